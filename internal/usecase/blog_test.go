package usecase_test

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"area1337-backend/internal/domain"
	"area1337-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostRepo struct {
	mock.Mock
}

func (m *MockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Post), args.Error(1)
}

func (m *MockPostRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func day(d int) time.Time {
	return time.Date(2024, time.May, d, 9, 30, 0, 0, time.UTC)
}

func samplePosts() []domain.Post {
	return []domain.Post{
		{ID: "older", Title: "Older", PubDate: day(1), Author: "Ann", Tags: []string{"news"}, BodyHTML: "<p>old</p>"},
		{ID: "draft", Title: "Draft", PubDate: day(20), Draft: true},
		{ID: "newest", Title: "Newest & <Best>", Description: "Fresh", PubDate: day(10), Author: "Bob", Tags: []string{"security", "release"}},
		{ID: "middle", Title: "Middle", PubDate: day(5)},
	}
}

func TestBlogListPublished(t *testing.T) {
	repo := new(MockPostRepo)
	repo.On("List", mock.Anything).Return(samplePosts(), nil)

	posts, err := usecase.NewBlogUsecase(repo).ListPublished(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		assert.Empty(t, p.BodyHTML, "listing must not carry bodies")
	}
	assert.Equal(t, []string{"newest", "middle", "older"}, ids)
}

func TestBlogGetPublished(t *testing.T) {
	repo := new(MockPostRepo)
	repo.On("GetBySlug", mock.Anything, "older").Return(&samplePosts()[0], nil)
	repo.On("GetBySlug", mock.Anything, "draft").Return(&samplePosts()[1], nil)
	repo.On("GetBySlug", mock.Anything, "missing").Return(nil, domain.ErrPostNotFound)
	repo.On("GetBySlug", mock.Anything, "broken").Return(nil, errors.New("disk on fire"))
	uc := usecase.NewBlogUsecase(repo)

	post, err := uc.GetPublished(context.Background(), "older")
	require.NoError(t, err)
	assert.Equal(t, "<p>old</p>", post.BodyHTML)

	_, err = uc.GetPublished(context.Background(), "draft")
	requireAppError(t, err, http.StatusNotFound, "Post not found.")

	_, err = uc.GetPublished(context.Background(), "missing")
	requireAppError(t, err, http.StatusNotFound, "Post not found.")

	_, err = uc.GetPublished(context.Background(), "broken")
	requireAppError(t, err, http.StatusInternalServerError, "Internal Server Error")
}

func TestFeedRSS(t *testing.T) {
	repo := new(MockPostRepo)
	repo.On("List", mock.Anything).Return(samplePosts(), nil)

	feed := usecase.NewFeedUsecase(usecase.NewBlogUsecase(repo), usecase.FeedConfig{
		Title:       "Area 1337 Blog",
		Description: "Elite software",
		SiteURL:     "https://area1337.com/",
		Language:    "en-gb",
	})

	out, err := feed.RSS(context.Background())
	require.NoError(t, err)
	body := string(out)

	assert.True(t, strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.NotContains(t, body, "Draft")
	assert.Contains(t, body, "<title>Newest &amp; &lt;Best&gt;</title>")

	var doc struct {
		Channel struct {
			Title    string `xml:"title"`
			Link     string `xml:"link"`
			Language string `xml:"language"`
			Items    []struct {
				Title      string   `xml:"title"`
				Link       string   `xml:"link"`
				GUID       string   `xml:"guid"`
				PubDate    string   `xml:"pubDate"`
				Author     string   `xml:"author"`
				Categories []string `xml:"category"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(out, &doc))

	assert.Equal(t, "Area 1337 Blog", doc.Channel.Title)
	assert.Equal(t, "https://area1337.com/", doc.Channel.Link)
	assert.Equal(t, "en-gb", doc.Channel.Language)
	require.Len(t, doc.Channel.Items, 3)

	first := doc.Channel.Items[0]
	assert.Equal(t, "Newest & <Best>", first.Title)
	assert.Equal(t, "https://area1337.com/blog/newest/", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Fri, 10 May 2024 09:30:00 GMT", first.PubDate)
	assert.Equal(t, "Bob", first.Author)
	assert.Equal(t, []string{"security", "release"}, first.Categories)

	assert.Equal(t, "https://area1337.com/blog/middle/", doc.Channel.Items[1].Link)
	assert.Equal(t, "https://area1337.com/blog/older/", doc.Channel.Items[2].Link)
}

func TestFeedRSSPropagatesRepositoryErrors(t *testing.T) {
	repo := new(MockPostRepo)
	repo.On("List", mock.Anything).Return(nil, errors.New("boom"))

	feed := usecase.NewFeedUsecase(usecase.NewBlogUsecase(repo), usecase.FeedConfig{SiteURL: "https://area1337.com"})
	_, err := feed.RSS(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, "Internal Server Error")
}

func TestHealthCheck(t *testing.T) {
	repo := new(MockPostRepo)
	repo.On("Ping", mock.Anything).Return(nil).Once()
	repo.On("Ping", mock.Anything).Return(errors.New("gone")).Once()

	uc := usecase.NewHealthUsecase(repo, nil)
	assert.Equal(t, map[string]string{"status": "ok", "redis": "disabled", "content": "ok"}, uc.Check(context.Background()))

	uc = usecase.NewHealthUsecase(repo, func(context.Context) string { return "unavailable" })
	got := uc.Check(context.Background())
	assert.Equal(t, "unavailable", got["redis"])
	assert.Equal(t, "error", got["content"])
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestCatalog(t *testing.T) {
	uc := usecase.NewCatalogUsecase(usecase.SiteConfig{Title: "Area 1337", URL: "https://area1337.com"})

	products := uc.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "v1337-registry", products[0].ID)
	assert.Contains(t, products[0].Editions, "business")
	assert.Contains(t, products[0].Editions, "enterprise")

	site := uc.Site()
	assert.Equal(t, "Area 1337", site.Title)
	assert.Equal(t, "Mecanik Dev Ltd", site.LegalName)
	assert.Len(t, site.NavLinks, 5)
}

package usecase

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"area1337-backend/internal/domain"
)

// FeedConfig describes the RSS channel
type FeedConfig struct {
	Title       string
	Description string
	SiteURL     string
	Language    string
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	Description string   `xml:"description,omitempty"`
	PubDate     string   `xml:"pubDate"`
	Author      string   `xml:"author,omitempty"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type feedUsecase struct {
	blog domain.BlogUsecase
	cfg  FeedConfig
}

func NewFeedUsecase(blog domain.BlogUsecase, cfg FeedConfig) domain.FeedUsecase {
	return &feedUsecase{blog: blog, cfg: cfg}
}

// RSS renders published posts newest first. Drafts never appear.
func (uc *feedUsecase) RSS(ctx context.Context) ([]byte, error) {
	posts, err := uc.blog.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	site, err := url.Parse(strings.TrimRight(uc.cfg.SiteURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid site url: %w", err)
	}

	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:       uc.cfg.Title,
			Description: uc.cfg.Description,
			Link:        site.String(),
			Language:    uc.cfg.Language,
			Items:       make([]rssItem, 0, len(posts)),
		},
	}

	for _, p := range posts {
		link := site.ResolveReference(&url.URL{Path: "blog/" + p.ID + "/"}).String()
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: p.Description,
			PubDate:     p.PubDate.UTC().Format(http.TimeFormat),
			Author:      p.Author,
			Categories:  p.Tags,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	return buf.Bytes(), nil
}

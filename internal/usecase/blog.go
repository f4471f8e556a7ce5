package usecase

import (
	"context"
	"errors"
	"sort"

	"area1337-backend/internal/domain"
	"area1337-backend/pkg/apperror"
)

type blogUsecase struct {
	repo domain.PostRepository
}

func NewBlogUsecase(repo domain.PostRepository) domain.BlogUsecase {
	return &blogUsecase{repo: repo}
}

func (uc *blogUsecase) ListPublished(ctx context.Context) ([]domain.Post, error) {
	posts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	published := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.Draft {
			continue
		}
		p.BodyHTML = ""
		published = append(published, p)
	}

	// Newest first; ties keep a stable order by id
	sort.SliceStable(published, func(i, j int) bool {
		if !published[i].PubDate.Equal(published[j].PubDate) {
			return published[i].PubDate.After(published[j].PubDate)
		}
		return published[i].ID < published[j].ID
	})
	return published, nil
}

func (uc *blogUsecase) GetPublished(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := uc.repo.GetBySlug(ctx, slug)
	if errors.Is(err, domain.ErrPostNotFound) {
		return nil, apperror.NotFound("Post not found.")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Drafts are invisible outside the authoring workflow
	if post.Draft {
		return nil, apperror.NotFound("Post not found.")
	}
	return post, nil
}

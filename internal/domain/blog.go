package domain

import (
	"context"
	"errors"
	"time"
)

var ErrPostNotFound = errors.New("post not found")

// Post is a blog entry from the content source
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PubDate     time.Time  `json:"pubDate"`
	UpdatedDate *time.Time `json:"updatedDate,omitempty"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags"`
	Draft       bool       `json:"-"`
	BodyHTML    string     `json:"bodyHtml,omitempty"`
}

// PostRepository reads posts, drafts included. Callers filter.
type PostRepository interface {
	List(ctx context.Context) ([]Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	// Ping checks the source is reachable without loading posts
	Ping(ctx context.Context) error
}

type BlogUsecase interface {
	// ListPublished returns non-draft posts without bodies, newest first
	ListPublished(ctx context.Context) ([]Post, error)
	GetPublished(ctx context.Context, slug string) (*Post, error)
}

type FeedUsecase interface {
	// RSS renders the blog feed as an RSS 2.0 document
	RSS(ctx context.Context) ([]byte, error)
}

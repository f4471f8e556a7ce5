package postgres

import (
	"context"
	"errors"
	"fmt"

	"area1337-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const postColumns = `slug, title, COALESCE(description, ''), pub_date, updated_date, COALESCE(author, ''), COALESCE(tags, '{}'), draft, COALESCE(body_html, '')`

// DBTX is the subset of *pgxpool.Pool the repository needs
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type postRepo struct {
	db DBTX
}

// NewPostRepository reads posts from the blog_posts table
func NewPostRepository(db DBTX) domain.PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) List(ctx context.Context) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts ORDER BY pub_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	tags := []string{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.PubDate, &p.UpdatedDate,
		&p.Author, pq.Array(&tags), &p.Draft, &p.BodyHTML,
	)
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}
	p.Tags = tags
	return &p, nil
}

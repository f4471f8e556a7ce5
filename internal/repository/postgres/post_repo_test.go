package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"area1337-backend/internal/domain"
	"area1337-backend/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow copies values into Scan destinations in column order
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		if scanner, ok := d.(sql.Scanner); ok {
			if err := scanner.Scan(r.values[i]); err != nil {
				return err
			}
			continue
		}
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

// fakeRows iterates over fakeRow values
type fakeRows struct {
	rows []fakeRow
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return r.rows[r.pos-1].Scan(dest...)
}

type fakeDB struct {
	rows     *fakeRows
	queryErr error
	row      fakeRow
	pingErr  error
	lastArgs []any
}

func (db *fakeDB) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	db.lastArgs = args
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	return db.rows, nil
}

func (db *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	db.lastArgs = args
	return db.row
}

func (db *fakeDB) Ping(context.Context) error {
	return db.pingErr
}

var pub = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func postRow(slug string, updated *time.Time, tags string, draft bool) fakeRow {
	var updatedValue any
	if updated != nil {
		updatedValue = updated
	}
	return fakeRow{values: []any{
		slug, "Title " + slug, "Desc", pub, updatedValue, "Area 1337", []byte(tags), draft, "<p>body</p>",
	}}
}

func TestPostgresGetBySlug(t *testing.T) {
	updated := pub.Add(24 * time.Hour)
	db := &fakeDB{row: postRow("hello", &updated, "{security,release}", false)}

	post, err := postgres.NewPostRepository(db).GetBySlug(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, []any{"hello"}, db.lastArgs)
	assert.Equal(t, "hello", post.ID)
	assert.Equal(t, "Title hello", post.Title)
	assert.Equal(t, pub, post.PubDate)
	require.NotNil(t, post.UpdatedDate)
	assert.Equal(t, updated, *post.UpdatedDate)
	assert.Equal(t, []string{"security", "release"}, post.Tags)
	assert.Equal(t, "<p>body</p>", post.BodyHTML)
}

func TestPostgresGetBySlugNotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}

	_, err := postgres.NewPostRepository(db).GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostgresGetBySlugScanError(t *testing.T) {
	db := &fakeDB{row: fakeRow{err: errors.New("conn reset")}}

	_, err := postgres.NewPostRepository(db).GetBySlug(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPostNotFound)
	assert.Contains(t, err.Error(), "scan post")
}

func TestPostgresList(t *testing.T) {
	db := &fakeDB{rows: &fakeRows{rows: []fakeRow{
		postRow("newest", nil, "{}", false),
		postRow("draft", nil, "{wip}", true),
	}}}

	posts, err := postgres.NewPostRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "newest", posts[0].ID)
	assert.Nil(t, posts[0].UpdatedDate)
	assert.Equal(t, []string{}, posts[0].Tags)
	assert.True(t, posts[1].Draft)
	assert.Equal(t, []string{"wip"}, posts[1].Tags)
}

func TestPostgresListErrors(t *testing.T) {
	repo := postgres.NewPostRepository(&fakeDB{queryErr: errors.New("relation does not exist")})
	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "query posts")

	repo = postgres.NewPostRepository(&fakeDB{rows: &fakeRows{err: errors.New("broken")}})
	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "iterate posts")
}

func TestPostgresPing(t *testing.T) {
	assert.NoError(t, postgres.NewPostRepository(&fakeDB{}).Ping(context.Background()))
	assert.Error(t, postgres.NewPostRepository(&fakeDB{pingErr: errors.New("down")}).Ping(context.Background()))
}

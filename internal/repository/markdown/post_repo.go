package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"area1337-backend/internal/domain"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

var frontMatterDelim = []byte("---")

// frontMatter mirrors the blog collection schema
type frontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	PubDate     flexDate  `yaml:"pubDate"`
	UpdatedDate *flexDate `yaml:"updatedDate"`
	Author      string    `yaml:"author"`
	Tags        []string  `yaml:"tags"`
	Draft       bool      `yaml:"draft"`
	Slug        string    `yaml:"slug"`
}

// flexDate accepts the date spellings authors tend to use in front matter
type flexDate struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2 2006",
	"Jan 02 2006",
	"January 2 2006",
	"January 2, 2006",
}

func (d *flexDate) UnmarshalYAML(value *yaml.Node) error {
	raw := strings.TrimSpace(value.Value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("line %d: unrecognised date %q", value.Line, raw)
}

type postRepo struct {
	dir string
	md  goldmark.Markdown

	mu     sync.Mutex
	stamp  string
	cached []domain.Post
}

// NewPostRepository reads posts from markdown files under dir.
// Parsed posts are kept until a file is added, removed or modified.
func NewPostRepository(dir string) domain.PostRepository {
	return &postRepo{
		dir: dir,
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (r *postRepo) List(ctx context.Context) ([]domain.Post, error) {
	paths, stamp, err := r.scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached == nil || r.stamp != stamp {
		posts := make([]domain.Post, 0, len(paths))
		for _, path := range paths {
			post, err := r.load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load posts: %s: %w", path, err)
			}
			posts = append(posts, *post)
		}
		r.cached, r.stamp = posts, stamp
	}

	out := make([]domain.Post, len(r.cached))
	copy(out, r.cached)
	return out, nil
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == slug {
			return &posts[i], nil
		}
	}
	return nil, domain.ErrPostNotFound
}

// Ping reports whether the content directory exists
func (r *postRepo) Ping(_ context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", r.dir)
	}
	return nil
}

// scan lists the markdown files and fingerprints them by path, size and mtime
func (r *postRepo) scan(ctx context.Context) ([]string, string, error) {
	var paths []string
	var stamp strings.Builder

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, path)
		stamp.WriteString(path)
		stamp.WriteByte(0)
		stamp.WriteString(strconv.FormatInt(info.Size(), 10))
		stamp.WriteByte(0)
		stamp.WriteString(strconv.FormatInt(info.ModTime().UnixNano(), 10))
		stamp.WriteByte('\n')
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return paths, stamp.String(), nil
}

func (r *postRepo) load(path string) (*domain.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}
	if fm.Title == "" {
		return nil, fmt.Errorf("front matter: title is required")
	}
	if fm.PubDate.IsZero() {
		return nil, fmt.Errorf("front matter: pubDate is required")
	}

	var html bytes.Buffer
	if err := r.md.Convert(body, &html); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	id := fm.Slug
	if id == "" {
		id, err = r.idFor(path)
		if err != nil {
			return nil, err
		}
	}

	post := &domain.Post{
		ID:          id,
		Title:       fm.Title,
		Description: fm.Description,
		PubDate:     fm.PubDate.Time,
		Author:      fm.Author,
		Tags:        fm.Tags,
		Draft:       fm.Draft,
		BodyHTML:    html.String(),
	}
	if fm.UpdatedDate != nil {
		t := fm.UpdatedDate.Time
		post.UpdatedDate = &t
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	return post, nil
}

// idFor derives the post id from its path: blog/2024/Hello World.md -> 2024/hello-world
func (r *postRepo) idFor(path string) (string, error) {
	rel, err := filepath.Rel(r.dir, path)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(strings.ToLower(rel), " ", "-"), nil
}

// splitFrontMatter separates the leading --- block from the markdown body
func splitFrontMatter(raw []byte) ([]byte, []byte, error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	if !bytes.HasPrefix(raw, append(frontMatterDelim, '\n')) {
		return nil, nil, fmt.Errorf("missing front matter")
	}
	rest := raw[len(frontMatterDelim)+1:]

	// Closing delimiter may be the very first line (empty front matter)
	if bytes.HasPrefix(rest, append(frontMatterDelim, '\n')) || bytes.Equal(rest, frontMatterDelim) {
		return nil, bytes.TrimPrefix(rest[len(frontMatterDelim):], []byte("\n")), nil
	}

	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-4], nil, nil
		}
		return nil, nil, fmt.Errorf("unterminated front matter")
	}
	return rest[:end], rest[end+5:], nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

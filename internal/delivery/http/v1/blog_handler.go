package v1

import (
	"net/http"

	"area1337-backend/internal/delivery/http/response"
	"area1337-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogUC domain.BlogUsecase
	feedUC domain.FeedUsecase
}

// NewBlogHandler registers the blog API on api and the feed at the site root
func NewBlogHandler(root *gin.Engine, api *gin.RouterGroup, blogUC domain.BlogUsecase, feedUC domain.FeedUsecase) {
	handler := &BlogHandler{
		blogUC: blogUC,
		feedUC: feedUC,
	}

	api.GET("/blog", handler.ListPosts)
	api.GET("/blog/*slug", handler.GetPost)
	root.GET("/rss.xml", handler.RSS)
}

// ListPosts godoc
// @Summary      List blog posts
// @Description  Published posts, newest first, without bodies.
// @Tags         blog
// @Produce      json
// @Success      200  {array}   domain.Post
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/blog [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	posts, err := h.blogUC.ListPublished(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Data(c, http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get a blog post
// @Description  A single published post with its rendered HTML body. Slugs may contain slashes.
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  domain.Post
// @Failure      404   {object}  response.ErrorBody
// @Router       /api/blog/{slug} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	slug := trimSlashes(c.Param("slug"))
	if slug == "" {
		h.ListPosts(c)
		return
	}

	post, err := h.blogUC.GetPublished(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}
	response.Data(c, http.StatusOK, post)
}

// RSS godoc
// @Summary      Blog RSS feed
// @Description  RSS 2.0 document of published posts, newest first.
// @Tags         blog
// @Produce      xml
// @Success      200  {string}  string
// @Failure      500  {object}  response.ErrorBody
// @Router       /rss.xml [get]
func (h *BlogHandler) RSS(c *gin.Context) {
	body, err := h.feedUC.RSS(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func trimSlashes(s string) string {
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

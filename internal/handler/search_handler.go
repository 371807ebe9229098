package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"booknook/internal/catalog"
	"booknook/internal/middleware"
)

// CatalogSearcher dispatches a query to an external catalog by source name.
type CatalogSearcher interface {
	Search(ctx context.Context, source, query string) ([]catalog.Result, string, error)
}

type SearchHandler struct {
	catalogs CatalogSearcher
}

func NewSearchHandler(catalogs CatalogSearcher) *SearchHandler {
	return &SearchHandler{catalogs: catalogs}
}

// SearchForm renders the empty search page.
func (h *SearchHandler) SearchForm(c *gin.Context) {
	c.HTML(http.StatusOK, "search_book.html", gin.H{
		"Identity": middleware.CurrentIdentity(c),
	})
}

// Search runs the query against the selected catalog. An upstream failure
// shows as zero results; only an unknown data_source is an error.
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.PostForm("search_book_query")
	source := c.DefaultPostForm("data_source", catalog.SourceGoogleBooks)

	results, label, err := h.catalogs.Search(c.Request.Context(), source, query)
	if err != nil {
		c.HTML(http.StatusOK, "search_book.html", gin.H{
			"Identity": middleware.CurrentIdentity(c),
			"Error":    "Invalid search source",
		})
		return
	}

	c.HTML(http.StatusOK, "search_book.html", gin.H{
		"Identity":   middleware.CurrentIdentity(c),
		"Books":      results,
		"Query":      query,
		"DataSource": label,
	})
}

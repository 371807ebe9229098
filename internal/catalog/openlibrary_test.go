package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"booknook/internal/language"
)

func newTestTable() *language.Table {
	table := language.NewTable()
	table.Add("eng", "English")
	table.Add("dut", "Dutch; Flemish")
	return table
}

const openLibraryFixture = `{
  "docs": [
    {
      "title": "Dune",
      "author_name": ["Frank Herbert"],
      "first_sentence": ["A beginning is the time.", "Take care."],
      "ratings_average": 4.2,
      "publish_date": ["1965", "1984"],
      "number_of_pages_median": 412,
      "language": ["eng", "dut", "xxx"]
    },
    {
      "title": "Scalar Sentence",
      "first_sentence": "Just one sentence.",
      "language": ["xxx"]
    },
    {
      "title": "Bare Minimum"
    }
  ]
}`

func TestOpenLibrarySearch_NormalizesDocs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "40", r.URL.Query().Get("limit"))
		w.Write([]byte(openLibraryFixture))
	}))
	defer server.Close()

	client := NewOpenLibraryClient(server.URL, newTestTable())
	results := client.Search(context.Background(), "dune")

	assert.Len(t, results, 3)

	assert.Equal(t, "Dune", results[0].Title)
	assert.Equal(t, "Frank Herbert", results[0].Authors)
	assert.Equal(t, "A beginning is the time., Take care.", results[0].Description)
	assert.Equal(t, 4, results[0].Rating)
	assert.Equal(t, "1965 - 1984", results[0].PublishedDate)
	assert.Equal(t, 412, results[0].TotalPageCount)
	// unknown codes are dropped, ";" in a name becomes " -"
	assert.Equal(t, "English, Dutch - Flemish", results[0].Language)

	// first_sentence may be a plain string
	assert.Equal(t, "Just one sentence.", results[1].Description)
	// no code resolves
	assert.Equal(t, "N/A", results[1].Language)

	assert.Equal(t, "", results[2].Description)
	assert.Equal(t, "", results[2].Authors)
	assert.Equal(t, 0, results[2].Rating)
	assert.Equal(t, "N/A", results[2].PublishedDate)
	assert.Equal(t, 0, results[2].TotalPageCount)
	assert.Equal(t, "N/A", results[2].Language)
}

func TestOpenLibrarySearch_Non200IsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOpenLibraryClient(server.URL, newTestTable())
	results := client.Search(context.Background(), "dune")

	assert.Empty(t, results)
}

package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"booknook/internal/language"
)

// OpenLibraryClient queries the Open Library search API. Unlike Google
// Books it needs no API key, and its documents use ISO 639-2 codes resolved
// through the startup language table.
type OpenLibraryClient struct {
	baseURL    string
	languages  *language.Table
	httpClient *http.Client
}

func NewOpenLibraryClient(baseURL string, languages *language.Table) *OpenLibraryClient {
	return &OpenLibraryClient{
		baseURL:   baseURL,
		languages: languages,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// stringList tolerates Open Library fields that are sometimes a JSON string
// and sometimes an array of strings (first_sentence in particular).
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// Search returns normalized results for the query. Any upstream failure
// (transport error or non-200) yields an empty slice.
func (c *OpenLibraryClient) Search(ctx context.Context, query string) []Result {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var parsed struct {
		Docs []struct {
			Title               string     `json:"title"`
			AuthorName          []string   `json:"author_name"`
			FirstSentence       stringList `json:"first_sentence"`
			RatingsAverage      float64    `json:"ratings_average"`
			PublishDate         []string   `json:"publish_date"`
			NumberOfPagesMedian int        `json:"number_of_pages_median"`
			Language            []string   `json:"language"`
		} `json:"docs"`
	}
	if json.NewDecoder(resp.Body).Decode(&parsed) != nil {
		return nil
	}

	results := make([]Result, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		publishedDate := "N/A"
		if len(doc.PublishDate) > 0 {
			publishedDate = strings.Join(doc.PublishDate, " - ")
		}

		results = append(results, Result{
			Title:          doc.Title,
			Authors:        strings.Join(doc.AuthorName, ", "),
			Description:    strings.Join(doc.FirstSentence, ", "),
			Rating:         int(doc.RatingsAverage),
			PublishedDate:  publishedDate,
			TotalPageCount: doc.NumberOfPagesMedian,
			Language:       c.resolveLanguages(doc.Language),
		})
	}
	return results
}

// resolveLanguages maps the document's ISO 639-2 codes through the table.
// Names containing ";" list several variants; keep them on one line.
func (c *OpenLibraryClient) resolveLanguages(codes []string) string {
	var names []string
	for _, code := range codes {
		if name, ok := c.languages.Lookup(code); ok {
			names = append(names, strings.ReplaceAll(name, ";", " -"))
		}
	}
	if len(names) == 0 {
		return "N/A"
	}
	return strings.Join(names, ", ")
}

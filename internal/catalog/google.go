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

// maxResults caps how many items either catalog is asked for.
const maxResults = 40

// GoogleBooksClient queries the Google Books volumes API.
type GoogleBooksClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGoogleBooksClient(baseURL, apiKey string) *GoogleBooksClient {
	return &GoogleBooksClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search returns normalized results for the query. Any upstream failure
// (transport error or non-200) yields an empty slice.
func (c *GoogleBooksClient) Search(ctx context.Context, query string) []Result {
	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("maxResults", strconv.Itoa(maxResults))

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
		Items []struct {
			VolumeInfo struct {
				Title         string   `json:"title"`
				Authors       []string `json:"authors"`
				Description   string   `json:"description"`
				AverageRating float64  `json:"averageRating"`
				PublishedDate string   `json:"publishedDate"`
				PageCount     int      `json:"pageCount"`
				Language      string   `json:"language"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if json.NewDecoder(resp.Body).Decode(&parsed) != nil {
		return nil
	}

	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		info := item.VolumeInfo

		publishedDate := info.PublishedDate
		if publishedDate == "" {
			publishedDate = "N/A"
		}

		languageName := "N/A"
		if info.Language != "" {
			languageName = language.Autonym(info.Language)
		}

		results = append(results, Result{
			Title:          info.Title,
			Authors:        strings.Join(info.Authors, ", "),
			Description:    info.Description,
			Rating:         int(info.AverageRating),
			PublishedDate:  publishedDate,
			TotalPageCount: info.PageCount,
			Language:       languageName,
		})
	}
	return results
}

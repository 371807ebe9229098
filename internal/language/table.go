// Package language holds the process-wide ISO 639-2 code table, loaded once
// at startup from the Library of Congress reference page, plus ISO 639-1
// autonym lookups used by the Google Books results.
package language

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Table maps ISO 639-2 codes to human-readable language names. It is
// populated once before the server starts serving and read-only afterwards,
// so no locking is needed.
type Table struct {
	codes map[string]string
}

func NewTable() *Table {
	return &Table{codes: make(map[string]string)}
}

// Load fetches the code-list page and fills the table. A fetch or parse
// failure is reported but tolerated by the caller: an empty or partial table
// just means unresolved codes render as "N/A".
func (t *Table) Load(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build code list request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch code list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch code list: unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fmt.Errorf("parse code list: %w", err)
	}

	t.parseRows(doc)
	return nil
}

// parseRows walks the document for table rows with at least 5 cells and maps
// cell 0 (the 639-2 code) to cell 2 (the English name).
func (t *Table) parseRows(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "tr" {
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "td" {
				cells = append(cells, strings.TrimSpace(nodeText(c)))
			}
		}
		if len(cells) >= 5 {
			t.codes[cells[0]] = cells[2]
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.parseRows(c)
	}
}

// Add registers a single code mapping.
func (t *Table) Add(code, name string) {
	t.codes[code] = name
}

// Lookup resolves an ISO 639-2 code to its display name.
func (t *Table) Lookup(code string) (string, bool) {
	name, ok := t.codes[code]
	return name, ok
}

// Len reports how many codes were loaded.
func (t *Table) Len() int {
	return len(t.codes)
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// Autonym returns a language's name in itself for an ISO 639-1 code, or
// "N/A" when the code cannot be resolved.
func Autonym(code string) string {
	tag, err := xlang.Parse(code)
	if err != nil {
		return "N/A"
	}
	name := display.Self.Name(tag)
	if name == "" {
		return "N/A"
	}
	return name
}

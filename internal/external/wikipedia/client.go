// Package wikipedia scrapes the index constituent list from the public
// wiki page. It is the only place the constituents table structure is
// known.
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/httputil"
	"github.com/mkale/spyglass/pkg/logger"
)

// Client fetches and parses the constituents page
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	pagePath   string
}

// NewClient creates a new Wikipedia client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.Wikipedia.BaseURL,
		pagePath:   cfg.Wikipedia.ConstituentsPage,
	}
}

// FetchConstituents scrapes the current constituent ticker symbols.
// Symbols are normalized to the quote-API convention (class shares use a
// dash: BRK.B becomes BRK-B).
func (c *Client) FetchConstituents(ctx context.Context) ([]string, error) {
	url := c.baseURL + c.pagePath

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	tickers := parseConstituents(doc)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no constituents found in page")
	}

	c.logger.WithField("count", len(tickers)).Debug("Fetched constituents")
	return tickers, nil
}

// parseConstituents extracts ticker symbols from the constituents table.
// The page carries the current constituents in a table with id
// "constituents"; the symbol is the first cell of each row. Falls back to
// the first wikitable when the id is missing.
func parseConstituents(doc *goquery.Document) []string {
	table := doc.Find("table#constituents")
	if table.Length() == 0 {
		table = doc.Find("table.wikitable").First()
	}

	tickers := make([]string, 0, 500)
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return // header row
		}

		symbol := strings.TrimSpace(cell.Text())
		if symbol == "" {
			return
		}

		tickers = append(tickers, normalizeSymbol(symbol))
	})

	return tickers
}

// normalizeSymbol converts wiki share-class notation to the quote-API one
func normalizeSymbol(symbol string) string {
	return strings.ReplaceAll(symbol, ".", "-")
}

package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/mkale/spyglass/internal/contracts"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/httputil"
	"github.com/mkale/spyglass/pkg/logger"
)

const quoteSummaryModules = "price,summaryDetail,financialData,incomeStatementHistory"

// Client fetches company fundamentals from the quote-summary endpoint.
// Requests are rate limited client side; the upstream throttles hard
// once you go past a handful of requests per second.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(httpClient *httputil.Client, cfg config.YahooConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// GetFacts fetches the fundamentals snapshot for a single ticker.
// Absent facts are not errors: missing market cap maps to 0, missing
// P/E and quarterly growth map to 0, and a fiscal year with no reported
// revenue becomes a NaN gap in the annual series. An error is returned
// only when the request itself fails or the payload is unusable.
func (c *Client) GetFacts(ctx context.Context, ticker string) (*contracts.CompanyFacts, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(quoteSummaryModules))

	resp, err := c.httpClient.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("quote summary request for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote summary for %s: status %d: %s", ticker, resp.StatusCode, string(body))
	}

	var payload quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quote summary for %s: %w", ticker, err)
	}

	if payload.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quote summary for %s: %s: %s",
			ticker, payload.QuoteSummary.Error.Code, payload.QuoteSummary.Error.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary for %s: empty result", ticker)
	}

	facts := mapFacts(ticker, payload.QuoteSummary.Result[0])

	c.logger.WithFields(map[string]interface{}{
		"ticker":     ticker,
		"market_cap": facts.MarketCap,
		"years":      len(facts.AnnualRevenue),
	}).Debug("Fetched company facts")

	return facts, nil
}

func mapFacts(ticker string, res quoteSummaryResult) *contracts.CompanyFacts {
	facts := &contracts.CompanyFacts{Ticker: ticker, Name: ticker}

	if res.Price != nil {
		if res.Price.ShortName != "" {
			facts.Name = res.Price.ShortName
		}
		if res.Price.MarketCap != nil {
			facts.MarketCap = res.Price.MarketCap.Raw
		}
	}
	if res.SummaryDetail != nil && res.SummaryDetail.TrailingPE != nil {
		facts.TrailingPE = res.SummaryDetail.TrailingPE.Raw
	}
	if res.FinancialData != nil && res.FinancialData.RevenueGrowth != nil {
		facts.QuarterlyRevenueGrowth = res.FinancialData.RevenueGrowth.Raw
	}

	if res.IncomeStatementHistory != nil {
		// Statements arrive most recent first, matching the series order
		// the derivations expect.
		series := make(contracts.Series, 0, len(res.IncomeStatementHistory.Statements))
		for _, stmt := range res.IncomeStatementHistory.Statements {
			if stmt.TotalRevenue == nil {
				series = append(series, math.NaN())
				continue
			}
			series = append(series, stmt.TotalRevenue.Raw)
		}
		facts.AnnualRevenue = series
	}

	return facts
}

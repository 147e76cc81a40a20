// Package payday provides a client for the Payday accounting REST API.
package payday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"github.com/steinunnb/vendorwatch/internal/common"
	"github.com/steinunnb/vendorwatch/internal/model"
	"github.com/steinunnb/vendorwatch/internal/review"
)

// DefaultBaseURL is the production Payday API endpoint.
const DefaultBaseURL = "https://api.payday.is"

// statementPageSize is how many statement lines one page request asks for.
const statementPageSize = 200

// Config holds the credentials and endpoint settings for the Payday API.
type Config struct {
	BaseURL      string
	APIVersion   string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Validate checks that the config can produce a working client.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return common.ErrMissingCredentials
	}
	return nil
}

// withDefaults fills in unset fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.APIVersion == "" {
		c.APIVersion = "alpha"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

// Client talks to the Payday accounting API. Tokens are cached in memory per
// client instance; a 401 response forces one token refresh and one retry.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu     sync.Mutex
	tokens oauth2.TokenSource
}

// NewClient creates a Payday API client from the given config.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	// Transient network and 5xx failures are retried at the transport level;
	// auth handling stays in this client.
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil

	c := &Client{
		cfg:        cfg,
		httpClient: rc.StandardClient(),
	}
	c.tokens = oauth2.ReuseTokenSource(nil, &tokenSource{
		ctx:        context.Background(),
		cfg:        cfg,
		httpClient: rc.StandardClient(),
	})
	return c, nil
}

// ListVendors returns all creditors known to the accounting system.
func (c *Client) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	body, err := c.get(ctx, "/accounting/creditors", url.Values{"balance": {"false"}})
	if err != nil {
		return nil, err
	}
	return decodeVendors(body)
}

// VendorBalances returns all creditors with their balance as of the given
// date (YYYY-MM-DD).
func (c *Client) VendorBalances(ctx context.Context, asOf string) ([]model.Vendor, error) {
	if _, err := review.ParseReportDate(asOf); err != nil {
		return nil, fmt.Errorf("invalid as-of date %q (want YYYY-MM-DD): %w", asOf, err)
	}
	body, err := c.get(ctx, "/accounting/creditors", url.Values{"balance": {"true"}, "date": {asOf}})
	if err != nil {
		return nil, err
	}
	return decodeVendors(body)
}

// FindVendors returns vendors whose name contains the query,
// case-insensitively.
func (c *Client) FindVendors(ctx context.Context, query string) ([]model.Vendor, error) {
	vendors, err := c.ListVendors(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVendors(vendors, query), nil
}

// FilterVendors returns the vendors whose name contains the query,
// case-insensitively. It is the same match FindVendors applies, usable
// against an already-loaded vendor list.
func FilterVendors(vendors []model.Vendor, query string) []model.Vendor {
	q := strings.ToLower(query)
	var hits []model.Vendor
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.Name), q) {
			hits = append(hits, v)
		}
	}
	return hits
}

// FetchStatement retrieves the full account statement for one vendor between
// two dates, following pagination until a short or empty page. Lines are
// returned raw; normalization belongs to the review engine.
func (c *Client) FetchStatement(ctx context.Context, vendorID, dateFrom, dateTo string) ([]model.StatementLine, error) {
	for _, d := range []string{dateFrom, dateTo} {
		if _, err := review.ParseReportDate(d); err != nil {
			return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", d, err)
		}
	}

	path := fmt.Sprintf("/accounting/creditors/%s/accountStatement", url.PathEscape(vendorID))
	var all []model.StatementLine
	for page := 1; ; page++ {
		params := url.Values{
			"dateFrom": {dateFrom},
			"dateTo":   {dateTo},
			"perpage":  {strconv.Itoa(statementPageSize)},
			"page":     {strconv.Itoa(page)},
		}
		body, err := c.get(ctx, path, params)
		if err != nil {
			return nil, err
		}
		lines, err := decodeStatementPage(body)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			break
		}
		all = append(all, lines...)
		if len(lines) < statementPageSize {
			break
		}
	}

	slog.Debug("Fetched vendor statement",
		"vendor_id", vendorID,
		"date_from", dateFrom,
		"date_to", dateTo,
		"lines", len(all))

	return all, nil
}

// get performs an authenticated GET. A 401 triggers one forced token refresh
// and one retry before giving up.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	resp, err := c.doGet(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		slog.Info("Received 401, refreshing token and retrying once")
		c.invalidateToken()
		resp, err = c.doGet(ctx, path, params)
		if err != nil {
			return nil, err
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", common.ErrVendorNotFound, path)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("payday API error: %d - %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	tok, err := c.token()
	if err != nil {
		return nil, err
	}

	u := c.cfg.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Api-Version", c.cfg.APIVersion)
	req.Header.Set("Accept", "application/json")

	slog.Debug("GET", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAPIUnavailable, err)
	}
	return resp, nil
}

func (c *Client) token() (*oauth2.Token, error) {
	c.mu.Lock()
	ts := c.tokens
	c.mu.Unlock()
	return ts.Token()
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = oauth2.ReuseTokenSource(nil, &tokenSource{
		ctx:        context.Background(),
		cfg:        c.cfg,
		httpClient: c.httpClient,
	})
}

type vendorPayload struct {
	ID             string `json:"id"`
	SSN            string `json:"ssn"`
	Name           string `json:"name"`
	Balance        any    `json:"balance"`
	CurrentBalance any    `json:"currentBalance"`
}

func decodeVendors(body []byte) ([]model.Vendor, error) {
	var payload []vendorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode vendors: %w", err)
	}
	vendors := make([]model.Vendor, 0, len(payload))
	for _, p := range payload {
		bal := p.Balance
		if bal == nil {
			bal = p.CurrentBalance
		}
		vendors = append(vendors, model.Vendor{
			ID:      p.ID,
			SSN:     p.SSN,
			Name:    p.Name,
			Balance: review.ParseAmount(bal),
		})
	}
	return vendors, nil
}

// decodeStatementPage handles both response shapes the API produces: a bare
// array of lines, or an object wrapping them under items, data or results.
func decodeStatementPage(body []byte) ([]model.StatementLine, error) {
	var lines []model.StatementLine
	if err := json.Unmarshal(body, &lines); err == nil {
		return lines, nil
	}

	var wrapped struct {
		Items   []model.StatementLine `json:"items"`
		Data    []model.StatementLine `json:"data"`
		Results []model.StatementLine `json:"results"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode statement page: %w", err)
	}
	switch {
	case len(wrapped.Items) > 0:
		return wrapped.Items, nil
	case len(wrapped.Data) > 0:
		return wrapped.Data, nil
	default:
		return wrapped.Results, nil
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: esearch resolves a
// free-text query to PMIDs, efetch retrieves full records.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pdiddy/pharma-papers/internal/httputil"
	"github.com/pdiddy/pharma-papers/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	esearchAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchAPIBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// Client talks to the NCBI E-utilities API. It enforces a minimum delay
// between consecutive requests; NCBI allows 3 requests/second without an
// API key and 10 with one.
type Client struct {
	HTTP *http.Client
	cfg  types.PubMedConfig

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient builds a Client from config, filling defaults for the tool
// name, request delay, and HTTP client.
func NewClient(cfg types.PubMedConfig) *Client {
	if cfg.Tool == "" {
		cfg.Tool = "pharma-papers"
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 340 * time.Millisecond
	}
	client := &http.Client{Timeout: cfg.Timeout}
	return &Client{HTTP: client, cfg: cfg}
}

// Search resolves a free-text PubMed query to an ordered list of PMIDs.
// An empty list is not an error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if maxResults <= 0 {
		maxResults = 100
	}

	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", maxResults))

	resp, err := c.get(ctx, esearchAPIBase, params)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	return sr.Result.IDList, nil
}

// Fetch retrieves one record by PMID.
func (c *Client) Fetch(ctx context.Context, pmid string) (*types.Record, error) {
	if pmid == "" {
		return nil, fmt.Errorf("pmid is empty")
	}

	params := c.baseParams()
	params.Set("id", pmid)
	params.Set("retmode", "xml")

	resp, err := c.get(ctx, efetchAPIBase, params)
	if err != nil {
		return nil, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set articleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing efetch response: %w", err)
	}

	if len(set.Articles) == 0 {
		return nil, fmt.Errorf("no article found for PMID %s", pmid)
	}

	return toRecord(set.Articles[0]), nil
}

// baseParams returns the identification parameters NCBI asks clients to
// send with every request.
func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("tool", c.cfg.Tool)
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	return params
}

// get throttles, then issues a GET with 429 retry.
func (c *Client) get(ctx context.Context, base string, params url.Values) (*http.Response, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	return httputil.DoWithRetry(ctx, c.HTTP, req, 0)
}

// throttle blocks until RequestDelay has elapsed since the previous
// request. The first request goes through immediately.
func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := c.cfg.RequestDelay - time.Since(c.lastRequest)
	if c.lastRequest.IsZero() || wait < 0 {
		wait = 0
	}
	c.lastRequest = time.Now().Add(wait)
	c.mu.Unlock()

	if wait == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

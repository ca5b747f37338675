package litigation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"orgvet/pkg/sentinel"
)

// Client searches federal dockets by organization name. The interface is
// kept small so tests can stub quickly.
type Client interface {
	SearchByOrgName(ctx context.Context, name string, lookbackYears int) (Result, error)
}

// HTTPClient queries a CourtListener-style REST API. Requests are spaced at
// least Interval apart to respect the upstream's fair-use policy; the
// limiter blocks rather than failing, bounded by the caller's context.
type HTTPClient struct {
	baseURL  string
	token    string
	interval time.Duration
	client   *http.Client

	mu   sync.Mutex
	last time.Time
}

// HTTPOption configures the HTTPClient.
type HTTPOption func(*HTTPClient)

// WithTransport overrides the underlying http.Client.
func WithTransport(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.client = c }
}

func NewHTTPClient(baseURL, token string, interval time.Duration, opts ...HTTPOption) *HTTPClient {
	h := &HTTPClient{
		baseURL:  baseURL,
		token:    token,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type searchResponse struct {
	Count   int `json:"count"`
	Results []struct {
		CaseName     string `json:"caseName"`
		Court        string `json:"court"`
		DateFiled    string `json:"dateFiled"`
		DocketNumber string `json:"docketNumber"`
	} `json:"results"`
}

func (h *HTTPClient) SearchByOrgName(ctx context.Context, name string, lookbackYears int) (Result, error) {
	if err := h.wait(ctx); err != nil {
		return Result{}, err
	}

	filedAfter := time.Now().AddDate(-lookbackYears, 0, 0).Format("2006-01-02")
	q := url.Values{}
	q.Set("type", "r")
	q.Set("q", fmt.Sprintf("%q", name))
	q.Set("filed_after", filedAfter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/search/?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Token "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("%w: docket search returned %d", sentinel.ErrUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decode docket search response: %w", err)
	}

	result := Result{CaseCount: body.Count, Found: body.Count > 0}
	if body.Count == 0 {
		result.Detail = fmt.Sprintf("no federal cases naming the organization in the last %d years", lookbackYears)
		return result, nil
	}
	result.Detail = fmt.Sprintf("%d federal case(s) naming the organization in the last %d years", body.Count, lookbackYears)
	for _, r := range body.Results {
		result.Cases = append(result.Cases, Case{
			CaseName:     r.CaseName,
			Court:        r.Court,
			DateFiled:    r.DateFiled,
			DocketNumber: r.DocketNumber,
		})
	}
	return result, nil
}

// wait enforces the minimum spacing between upstream calls.
func (h *HTTPClient) wait(ctx context.Context) error {
	h.mu.Lock()
	now := time.Now()
	next := h.last.Add(h.interval)
	if next.Before(now) {
		next = now
	}
	h.last = next
	h.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		// Give the abandoned slot back so later callers are not pushed
		// out by a request that never went upstream. Skipped when a
		// later caller has already reserved past it.
		h.mu.Lock()
		if h.last.Equal(next) {
			h.last = next.Add(-h.interval)
		}
		h.mu.Unlock()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MockClient returns a canned result, used in tests and local wiring.
type MockClient struct {
	Latency time.Duration
	Result  Result
	Err     error
}

func (c MockClient) SearchByOrgName(_ context.Context, _ string, _ int) (Result, error) {
	time.Sleep(c.Latency)
	return c.Result, c.Err
}

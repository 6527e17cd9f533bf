// Package cms reads merchants and coupons from the headless CMS REST API
// and reshapes them into flat view models. Client does the HTTP work,
// Service joins and caches the catalog, and DirSource reads the same
// payloads from fixture files for offline use.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 100
	// maxPages bounds pagination in case the server reports a bogus
	// pageCount.
	maxPages = 200
	// maxErrorBody is how much of an error response body is kept.
	maxErrorBody = 512
)

// Client talks to the CMS REST API.
type Client struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int

	http *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.BaseURL = strings.TrimRight(strings.TrimSpace(u), "/")
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.Token = strings.TrimSpace(token)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.PageSize = n
		}
	}
}

// WithHTTPClient replaces the underlying http.Client; its Timeout is
// left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		Timeout:  defaultTimeout,
		PageSize: defaultPageSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// URL returns the full request URL for path and query.
func (c *Client) URL(path string, q *Query) string {
	u := c.BaseURL + "/" + strings.TrimLeft(path, "/")
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, q *Query) ([]byte, error) {
	if c.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path, q), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms %s: reading body: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("cms %s: %w", path, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("cms %s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{Code: resp.StatusCode, Path: path, Body: snippet}
	}
	return body, nil
}

// paginate walks every page of a collection, handing each body to parse.
func (c *Client) paginate(ctx context.Context, path string, base *Query, parse func([]byte) (Pagination, error)) error {
	for page := 1; page <= maxPages; page++ {
		q := base.Clone().Page(page, c.PageSize)
		body, err := c.get(ctx, path, q)
		if err != nil {
			return err
		}
		meta, err := parse(body)
		if err != nil {
			return fmt.Errorf("cms %s page %d: %w", path, page, err)
		}
		if meta.PageCount <= page {
			return nil
		}
	}
	return nil
}

// MerchantsQuery is the base query used to list merchants.
func MerchantsQuery() *Query {
	return NewQuery().Populate("categories").Sort("name:asc")
}

// CouponsQuery is the base query used to list coupons.
func CouponsQuery() *Query {
	return NewQuery().Populate("merchant").Sort("updatedAt:desc")
}

// Merchants fetches every merchant.
func (c *Client) Merchants(ctx context.Context) ([]Merchant, error) {
	var out []Merchant
	err := c.paginate(ctx, "/api/merchants", MerchantsQuery(), func(body []byte) (Pagination, error) {
		items, page, err := ParseMerchants(body)
		out = append(out, items...)
		return page, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Coupons fetches every coupon.
func (c *Client) Coupons(ctx context.Context) ([]Coupon, error) {
	var out []Coupon
	err := c.paginate(ctx, "/api/coupons", CouponsQuery(), func(body []byte) (Pagination, error) {
		items, page, err := ParseCoupons(body)
		out = append(out, items...)
		return page, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Merchant fetches one merchant by slug together with its coupons.
func (c *Client) Merchant(ctx context.Context, slug string) (Merchant, []Coupon, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Merchant{}, nil, fmt.Errorf("merchant slug: %w", ErrNotFound)
	}

	body, err := c.get(ctx, "/api/merchants", MerchantsQuery().Filter("slug", OpEq, slug).Page(1, 1))
	if err != nil {
		return Merchant{}, nil, err
	}
	merchants, _, err := ParseMerchants(body)
	if err != nil {
		return Merchant{}, nil, err
	}
	if len(merchants) == 0 {
		return Merchant{}, nil, fmt.Errorf("merchant %q: %w", slug, ErrNotFound)
	}

	var coupons []Coupon
	err = c.paginate(ctx, "/api/coupons", CouponsQuery().Filter("merchant.slug", OpEq, slug), func(body []byte) (Pagination, error) {
		items, page, err := ParseCoupons(body)
		coupons = append(coupons, items...)
		return page, err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return merchants[0], nil, err
	}
	m := merchants[0]
	m.CouponCount = len(coupons)
	return m, coupons, nil
}

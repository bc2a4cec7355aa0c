package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPError is what every failed upstream call surfaces: transport errors
// and decode errors carry Status 0, HTTP failures carry the real status.
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
}

// Params holds query-string values. Empty values are omitted from the
// request instead of being serialized as empty pairs.
type Params map[string]string

func (p Params) encode() string {
	if len(p) == 0 {
		return ""
	}
	v := url.Values{}
	for k, val := range p {
		if strings.TrimSpace(val) == "" {
			continue
		}
		v.Set(k, val)
	}
	return v.Encode()
}

// Client issues requests against the job-board API. It holds no view
// state; callers decide what to do with failures (none of them retry).
type Client struct {
	base    string
	hc      *http.Client
	limiter *HostLimiter
	token   func() string
}

type Option func(*Client)

// WithToken installs a bearer-token source used on every request that has
// one available (admin endpoints reject anonymous calls upstream).
func WithToken(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(baseURL string, timeout time.Duration, limiter *HostLimiter, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) urlFor(path string, params Params) string {
	u := c.base + "/" + strings.TrimLeft(path, "/")
	if q := params.encode(); q != "" {
		u += "?" + q
	}
	return u
}

// do runs one request and decodes a JSON body into out (when out != nil).
// Any 2xx is success; everything else becomes an *HTTPError.
func (c *Client) do(ctx context.Context, method, path string, params Params, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &HTTPError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		rd = bytes.NewReader(b)
	}

	full := c.urlFor(path, params)
	req, err := http.NewRequestWithContext(ctx, method, full, rd)
	if err != nil {
		return &HTTPError{Message: err.Error()}
	}
	req.Header.Set("User-Agent", "JobDesk/1.0 (+local)")
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, full); err != nil {
			return &HTTPError{Message: err.Error()}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return &HTTPError{Message: fmt.Sprintf("%s %s: %v", method, path, err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{Status: res.StatusCode, Message: readErrorMessage(res)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &HTTPError{Message: fmt.Sprintf("decode %s: %v", path, err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params Params, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// readErrorMessage prefers the upstream's {"message": ...} envelope and
// falls back to the raw body (capped) or the status text.
func readErrorMessage(res *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &env); err == nil && env.Message != "" {
		return env.Message
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s
	}
	return http.StatusText(res.StatusCode)
}

// Bytes fetches a raw asset (logo image paths are relative to the API
// host) and returns the body plus its content type.
func (c *Client) Bytes(ctx context.Context, path string) ([]byte, string, error) {
	full := c.urlFor(path, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, "", &HTTPError{Message: err.Error()}
	}
	req.Header.Set("User-Agent", "JobDesk/1.0 (+local)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, full); err != nil {
			return nil, "", &HTTPError{Message: err.Error()}
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, "", &HTTPError{Message: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, "", &HTTPError{Status: res.StatusCode, Message: readErrorMessage(res)}
	}

	const max = 512 * 1024 // protect the local DB
	b, err := io.ReadAll(io.LimitReader(res.Body, max+1))
	if err != nil {
		return nil, "", &HTTPError{Message: err.Error()}
	}
	if len(b) > max {
		return nil, "", &HTTPError{Message: "asset too large"}
	}
	return b, res.Header.Get("Content-Type"), nil
}

// BaseURL reports the configured upstream base, mostly for logging.
func (c *Client) BaseURL() string { return c.base }

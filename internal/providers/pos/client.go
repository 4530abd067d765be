package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"employee-directory/internal/domain"
	"employee-directory/internal/httpx"

	"github.com/google/uuid"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON

	DefaultBaseURL    = "http://localhost/pos-endpoint"
	DefaultListPath   = "/getEmployees.php"
	DefaultUpdatePath = "/updateEmployee.php"
)

// Client talks to the POS employee endpoints.
type Client struct {
	BaseURL    string
	ListPath   string
	UpdatePath string
	HTTP       *http.Client
}

type Option func(*Client)

func WithPaths(list, update string) Option {
	return func(c *Client) {
		if list != "" {
			c.ListPath = list
		}
		if update != "" {
			c.UpdatePath = update
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.HTTP.Timeout = d
		}
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.HTTP = h
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	tr := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		ListPath:   DefaultListPath,
		UpdatePath: DefaultUpdatePath,
		HTTP: &http.Client{
			Timeout:   time.Minute,
			Transport: tr,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) url(path string) string {
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func setHeaders(r *http.Request, token string) {
	r.Header.Set("Content-Type", contentTypeJSON)
	r.Header.Set("Accept", acceptJSON)
	r.Header.Set("Accept-Encoding", "br")
	r.Header.Set("Authorization", "Bearer "+token)
	r.Header.Set("X-Request-Id", uuid.NewString())
}

// ListEmployees fetches the whole directory. The response is trusted only
// when it is JSON, status is "success" and data is an array.
func (c *Client) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	const op = "list employees"

	resp, body, err := httpx.Do(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(c.ListPath), nil)
			if err != nil {
				return nil, err
			}
			setHeaders(r, token)
			return r, nil
		},
	)
	if err != nil {
		return nil, &Error{Kind: ErrTransport, Op: op, Err: err}
	}

	if !httpx.IsJSON(resp) {
		return nil, &Error{
			Kind: ErrDecode,
			Op:   op,
			Err:  errors.New("expected JSON but received " + resp.Header.Get("Content-Type") + ": " + httpx.Snippet(body, 300)),
		}
	}

	var env domain.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &Error{Kind: ErrDecode, Op: op, Err: err}
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, &Error{Kind: ErrRejected, Op: op, Message: msg}
	}
	if !env.DataIsArray() {
		return nil, &Error{Kind: ErrDecode, Op: op, Err: errors.New("data is not an array")}
	}

	var out []domain.Employee
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, &Error{Kind: ErrDecode, Op: op, Err: err}
	}
	if out == nil {
		out = []domain.Employee{}
	}
	return out, nil
}

// UpdateEmployee sends one edited record. Only the HTTP status decides the
// outcome; the response body is not interpreted.
func (c *Client) UpdateEmployee(ctx context.Context, token string, req domain.UpdateRequest) error {
	const op = "update employee"

	b, err := json.Marshal(req)
	if err != nil {
		return &Error{Kind: ErrDecode, Op: op, Err: err}
	}

	_, _, err = httpx.Do(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url(c.UpdatePath), bytes.NewReader(b))
			if err != nil {
				return nil, err
			}
			setHeaders(r, token)
			return r, nil
		},
	)
	if err != nil {
		return &Error{Kind: ErrTransport, Op: op, Err: err}
	}
	return nil
}

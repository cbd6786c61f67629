package libraryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/biblio2ie/biblio/core/logger"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the library backend. Every call is a single request: no
// retries, no queueing. The bearer token is passed per call so one client
// serves every session.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	logger       *slog.Logger
	demoFallback bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDemoFallback makes ListBooks answer with DemoBooks when the backend
// is unreachable.
func WithDemoFallback(enabled bool) Option {
	return func(c *Client) { c.demoFallback = enabled }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &out)
	return out, err
}

// Register creates a student account.
func (c *Client) Register(ctx context.Context, reg Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", reg, nil)
}

// ListBooks returns the catalogue narrowed by f. With the demo fallback
// enabled an unreachable backend yields the filtered DemoBooks instead of
// an error.
func (c *Client) ListBooks(ctx context.Context, f BookFilter) ([]Book, error) {
	q := url.Values{}
	if f.Title != "" {
		q.Set("titre", f.Title)
	}
	if f.Author != "" {
		q.Set("auteur", f.Author)
	}
	if f.Genre != "" {
		q.Set("genre", f.Genre)
	}
	path := "/livres"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var books []Book
	err := c.do(ctx, http.MethodGet, path, "", nil, &books)
	if err != nil && c.demoFallback && errors.Is(err, ErrUnavailable) && ctx.Err() == nil {
		c.logger.WarnContext(ctx, "library backend unreachable, serving demo catalogue",
			logger.Component("libraryapi"),
			logger.Error(err),
		)
		return FilterBooks(DemoBooks(), f), nil
	}
	return books, err
}

func (c *Client) GetBook(ctx context.Context, id int64) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodGet, "/livres/"+itoa(id), "", nil, &out)
	return out, err
}

func (c *Client) CreateBook(ctx context.Context, token string, in BookInput) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodPost, "/livres", token, in, &out)
	return out, err
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int64, in BookInput) (Book, error) {
	var out Book
	err := c.do(ctx, http.MethodPut, "/livres/"+itoa(id), token, in, &out)
	return out, err
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/livres/"+itoa(id), token, nil, nil)
}

func (c *Client) ListReviews(ctx context.Context, bookID int64) ([]Review, error) {
	var out []Review
	err := c.do(ctx, http.MethodGet, "/livres/"+itoa(bookID)+"/reviews", "", nil, &out)
	return out, err
}

func (c *Client) AddReview(ctx context.Context, token string, bookID int64, in ReviewInput) (Review, error) {
	var out Review
	err := c.do(ctx, http.MethodPost, "/livres/"+itoa(bookID)+"/reviews", token, in, &out)
	return out, err
}

// Borrow borrows a book for the token's owner.
func (c *Client) Borrow(ctx context.Context, token string, bookID int64) error {
	body := struct {
		BookID int64 `json:"livreId"`
	}{bookID}
	return c.do(ctx, http.MethodPost, "/emprunts", token, body, nil)
}

func (c *Client) MyBorrows(ctx context.Context, token string) ([]Borrow, error) {
	var out []Borrow
	err := c.do(ctx, http.MethodGet, "/emprunts/my-borrows", token, nil, &out)
	return out, err
}

func (c *Client) AllBorrows(ctx context.Context, token string) ([]Borrow, error) {
	var out []Borrow
	err := c.do(ctx, http.MethodGet, "/emprunts/all", token, nil, &out)
	return out, err
}

// ReturnBorrow marks a loan as returned.
func (c *Client) ReturnBorrow(ctx context.Context, token string, borrowID int64) error {
	return c.do(ctx, http.MethodPut, "/emprunts/"+itoa(borrowID)+"/return", token, struct{}{}, nil)
}

func (c *Client) ListStudents(ctx context.Context, token string) ([]Student, error) {
	var out []Student
	err := c.do(ctx, http.MethodGet, "/etudiants", token, nil, &out)
	return out, err
}

func (c *Client) UpdateStudent(ctx context.Context, token string, id int64, in StudentInput) error {
	return c.do(ctx, http.MethodPut, "/etudiants/"+itoa(id), token, in, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, "/etudiants/"+itoa(id), token, nil, nil)
}

// do sends one request and decodes the answer into out. A nil out discards
// the body.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("libraryapi: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("libraryapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	addAuthHeader(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			apiErr.Message = msg
			apiErr.FromBackend = true
		}
	}
	return apiErr
}

func addAuthHeader(req *http.Request, token string) {
	if strings.TrimSpace(token) == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

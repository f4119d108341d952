package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/annotations"
	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/utils"
)

const (
	DefaultBaseURL = "https://www.churchofjesuschrist.org"

	// AuthCookie carries the session token.
	AuthCookie = "Church-auth-jwt-prod"

	annotationsPath = "/notes/api/v2/annotations"
	tagsPath        = "/notes/api/v2/tags"
	foldersPath     = "/notes/api/v2/folders"
)

var (
	// ErrUnauthorized means the token is missing, expired or rejected.
	ErrUnauthorized = errors.New("notes api: unauthorized")
	// ErrFolderNotFound is returned when a folder name matches no folder.
	ErrFolderNotFound = errors.New("folder not found")
)

type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to the authenticated notes API.
type Client struct {
	base       string
	token      string
	userAgent  string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(opts Options, log logger.Logger) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		base:       base,
		token:      opts.Token,
		userAgent:  opts.UserAgent,
		httpClient: hc,
		log:        log,
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Annotations returns one page of raw records. Type filters are checked
// before any request is made.
func (c *Client) Annotations(ctx context.Context, q Query) ([]annotations.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var out []annotations.Record
	if err := c.getList(ctx, annotationsPath, q.values(), "annotations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type apiTag struct {
	Name            string `json:"name"`
	AnnotationCount int    `json:"annotationCount"`
}

func (c *Client) Tags(ctx context.Context) ([]domain.Tag, error) {
	var raw []apiTag
	if err := c.getList(ctx, tagsPath, nil, "tags", &raw); err != nil {
		return nil, err
	}
	tags := make([]domain.Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, domain.Tag{Name: t.Name, Count: t.AnnotationCount})
	}
	return tags, nil
}

type apiFolder struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AnnotationCount int    `json:"annotationCount"`
}

func (c *Client) Folders(ctx context.Context) ([]domain.Folder, error) {
	var raw []apiFolder
	if err := c.getList(ctx, foldersPath, nil, "folders", &raw); err != nil {
		return nil, err
	}
	folders := make([]domain.Folder, 0, len(raw))
	for _, f := range raw {
		folders = append(folders, domain.Folder{ID: f.ID, Name: f.Name, Count: f.AnnotationCount})
	}
	return folders, nil
}

// FolderID resolves a folder name (case-insensitive) to its id.
func (c *Client) FolderID(ctx context.Context, name string) (string, error) {
	folders, err := c.Folders(ctx)
	if err != nil {
		return "", err
	}
	for _, f := range folders {
		if strings.EqualFold(f.Name, name) {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrFolderNotFound, name)
}

// getList decodes a JSON array, or an object holding the array under key.
func (c *Client) getList(ctx context.Context, path string, params url.Values, key string, out interface{}) error {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: c.token})
	}
	reqID := utils.OutboundRequestID(ctx)
	req.Header.Set(utils.RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer utils.DrainClose(resp.Body, c.log)

	c.log.Debug("notes api call",
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)),
		logger.String("request_id", reqID))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("get %s: status %d: %w", path, resp.StatusCode, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		inner, ok := wrapped[key]
		if !ok {
			return fmt.Errorf("decode %s: no %q in response", path, key)
		}
		raw = inner
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

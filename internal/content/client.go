package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/utils"
)

const (
	// DefaultBaseURL is the site hosting the content API.
	DefaultBaseURL = "https://www.churchofjesuschrist.org"
	// Endpoint is the batched content API path.
	Endpoint = "/content/api/v2"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string        // ex: https://www.churchofjesuschrist.org
	Timeout    time.Duration // per call, default 30s
	UserAgent  string
	HTTPClient *http.Client // overrides Timeout when set
}

// Client fetches content fragments from the content API.
type Client struct {
	endpoint   string
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
		endpoint:   base + Endpoint,
		userAgent:  opts.UserAgent,
		httpClient: hc,
		log:        log,
	}
}

// Fetch resolves uris (each "/{locale}{path}") with a single batched call and
// returns the records keyed by URI. Duplicates are sent as given. An empty
// input returns an empty map without a network call.
//
// Every requested URI must be present in the response, otherwise a
// *MissingContentError is returned.
func (c *Client) Fetch(ctx context.Context, uris []string) (map[string]Record, error) {
	if len(uris) == 0 {
		return map[string]Record{}, nil
	}

	body, err := json.Marshal(batchRequest{URIs: uris})
	if err != nil {
		return nil, &FetchError{URIs: len(uris), Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URIs: len(uris), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	reqID := utils.OutboundRequestID(ctx)
	req.Header.Set(utils.RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("content fetch failed",
			logger.Int("uris", len(uris)),
			logger.String("request_id", reqID),
			logger.Error(err))
		return nil, &FetchError{URIs: len(uris), Err: err}
	}
	defer utils.DrainClose(resp.Body, c.log)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("content fetch rejected",
			logger.Int("uris", len(uris)),
			logger.Int("status", resp.StatusCode),
			logger.String("request_id", reqID))
		return nil, &FetchError{URIs: len(uris), Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var records map[string]Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &FetchError{URIs: len(uris), Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	c.log.Debug("content fetched",
		logger.Int("uris", len(uris)),
		logger.Int("records", len(records)),
		logger.Duration("duration", time.Since(start)),
		logger.String("request_id", reqID))

	for _, u := range uris {
		if _, ok := records[u]; !ok {
			return nil, &MissingContentError{URI: u}
		}
	}
	return records, nil
}

// FetchContent is Fetch followed by NewContent, in request order.
func (c *Client) FetchContent(ctx context.Context, uris []string) ([]Content, error) {
	records, err := c.Fetch(ctx, uris)
	if err != nil {
		return nil, err
	}
	out := make([]Content, 0, len(uris))
	for _, u := range uris {
		out = append(out, NewContent(records[u]))
	}
	return out, nil
}

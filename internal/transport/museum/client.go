// Package museum is the HTTP client for a museum collection API.
// A lookup is two-staged: search returns only ids and a total,
// and each id has to be fetched separately for its title and image.
package museum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smuseum/internal/domain"
	"github.com/kailas-cloud/smuseum/internal/metrics"
)

const (
	opSearch = "search"
	opFetch  = "fetch"

	maxErrorBody = 4 << 10
)

// Config holds the collection client settings.
type Config struct {
	Museum     domain.Museum
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout
	Logger     *zap.Logger
}

// Client talks to one museum backend.
type Client struct {
	http   *http.Client
	museum domain.Museum
	logger *zap.Logger
}

// NewClient creates a collection API client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   hc,
		museum: cfg.Museum.WithDefaults(),
		logger: logger,
	}
}

// Museum returns the backend definition the client is bound to.
func (c *Client) Museum() domain.Museum { return c.museum }

// Search queries the collection for objects with images attributed to artist.
// A non-2xx answer is returned as *domain.RemoteError. No retries.
func (c *Client) Search(ctx context.Context, artist string) (domain.SearchResult, error) {
	u, err := c.searchURL(artist)
	if err != nil {
		return domain.SearchResult{}, domain.NewRemoteError(opSearch, 0, err.Error())
	}

	body, err := c.get(ctx, opSearch, u)
	if err != nil {
		return domain.SearchResult{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.countError(opSearch, "decode")
		return domain.SearchResult{}, domain.NewRemoteError(opSearch, 0, "decode search response: "+err.Error())
	}

	var res domain.SearchResult
	if v, ok := raw[c.museum.Fields.Total]; ok {
		if err := json.Unmarshal(v, &res.Total); err != nil {
			c.countError(opSearch, "decode")
			return domain.SearchResult{}, domain.NewRemoteError(opSearch, 0, "decode total: "+err.Error())
		}
	}
	if v, ok := raw[c.museum.Fields.ObjectIDs]; ok {
		// The MET answers {"total":0,"objectIDs":null}.
		if err := json.Unmarshal(v, &res.ObjectIDs); err != nil {
			c.countError(opSearch, "decode")
			return domain.SearchResult{}, domain.NewRemoteError(opSearch, 0, "decode object ids: "+err.Error())
		}
	}
	if res.Total == 0 {
		res.ObjectIDs = nil
	}
	return res, nil
}

// FetchByID loads one object record. Missing title or image fields are not errors.
func (c *Client) FetchByID(ctx context.Context, id int) (domain.Record, error) {
	body, err := c.get(ctx, opFetch, c.objectURL(id))
	if err != nil {
		return domain.Record{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.countError(opFetch, "decode")
		return domain.Record{}, domain.NewRemoteError(opFetch, 0,
			fmt.Sprintf("decode object %d: %s", id, err.Error()))
	}

	rec := domain.Record{ID: id}
	rec.Title = c.stringField(raw, c.museum.Fields.Title, id)
	rec.ImageLink = c.stringField(raw, c.museum.Fields.Image, id)
	delete(raw, c.museum.Fields.Title)
	delete(raw, c.museum.Fields.Image)
	if len(raw) > 0 {
		rec.Extra = raw
	}
	return rec, nil
}

// HealthCheck verifies the backend answers HTTP at all; any status counts as reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.museum.ObjectURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("museum %s unreachable: %w", c.museum.Name, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) get(ctx context.Context, op, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, domain.NewRemoteError(op, 0, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.MuseumRequestDuration.WithLabelValues(c.museum.Name, op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.MuseumRequestsTotal.WithLabelValues(c.museum.Name, op, "error").Inc()
		c.countError(op, transportErrorType(err))
		return nil, domain.NewRemoteError(op, 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.MuseumRequestsTotal.WithLabelValues(c.museum.Name, op, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.countError(op, "http_status")
		msg := errorMessage(resp)
		c.logger.Debug("museum API error",
			zap.String("op", op),
			zap.String("url", u),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, domain.NewRemoteError(op, resp.StatusCode, msg)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countError(op, "read")
		return nil, domain.NewRemoteError(op, 0, "read body: "+err.Error())
	}
	return body, nil
}

func (c *Client) searchURL(artist string) (string, error) {
	u, err := url.Parse(c.museum.SearchURL)
	if err != nil {
		return "", fmt.Errorf("parse search url: %w", err)
	}
	q := u.Query()
	q.Set("q", artist)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) objectURL(id int) string {
	return strings.TrimSuffix(c.museum.ObjectURL, "/") + "/" + strconv.Itoa(id)
}

// stringField decodes a string field; absent, null or non-string values yield nil.
func (c *Client) stringField(raw map[string]json.RawMessage, name string, id int) *string {
	v, ok := raw[name]
	if !ok {
		return nil
	}
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		c.logger.Debug("ignoring non-string field",
			zap.Int("object_id", id),
			zap.String("field", name),
			zap.Error(err),
		)
		return nil
	}
	return s
}

func (c *Client) countError(op, errorType string) {
	metrics.MuseumErrorsTotal.WithLabelValues(c.museum.Name, op, errorType).Inc()
}

func transportErrorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return "timeout"
	}
	return "transport"
}

// errorMessage extracts {"message": ...} from an error body, falling back to the status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		return body.Message
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "unexpected status " + strconv.Itoa(resp.StatusCode)
}

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"folio/app/internal/auth"
)

const (
	restPrefix = "/rest/v1/"
	authPrefix = "/auth/v1/"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 1 << 20

	singletonMediaType = "application/vnd.pgrst.object+json"
)

// Options configures a Client.
type Options struct {
	URL        string
	AnonKey    string
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client talks to the PostgREST and GoTrue endpoints of one project.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// New constructs a Client. URL and AnonKey are required.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		return nil, eris.New("supabase url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, eris.Wrapf(err, "invalid supabase url %q", base)
	}
	key := strings.TrimSpace(opts.AnonKey)
	if key == "" {
		return nil, eris.New("supabase anon key is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    base,
		anonKey:    key,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

type request struct {
	method    string
	path      string
	query     url.Values
	body      any
	singleton bool
	// represent asks PostgREST to return the affected rows.
	represent bool
	// token overrides the bearer derived from the context.
	token string
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	var reqBody io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return eris.Wrap(err, "marshal body")
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reqBody)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("apikey", c.anonKey)
	httpReq.Header.Set("Authorization", "Bearer "+c.bearer(ctx, req.token))
	if req.singleton {
		httpReq.Header.Set("Accept", singletonMediaType)
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	if req.represent {
		httpReq.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return eris.Wrap(err, "do request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &APIError{Status: resp.StatusCode, Message: "failed to read body: " + readErr.Error()}
		}
		apiErr := decodeAPIError(resp.StatusCode, body)
		c.logDebug(req, apiErr)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return eris.Wrap(err, "decode response")
	}
	return nil
}

func (c *Client) bearer(ctx context.Context, override string) string {
	if override != "" {
		return override
	}
	if session := auth.SessionFromContext(ctx); session != nil && session.AccessToken != "" {
		return session.AccessToken
	}
	return c.anonKey
}

func (c *Client) logDebug(req request, err *APIError) {
	if c.logger == nil {
		return
	}
	c.logger.WithFields(logrus.Fields{
		"method": req.method,
		"path":   req.path,
		"status": err.Status,
		"code":   err.Code,
	}).Debug("supabase request failed")
}

func restPath(table string) string {
	return restPrefix + url.PathEscape(table)
}

func authPath(endpoint string) string {
	return authPrefix + endpoint
}

package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"habackfill/internal/config"
	"habackfill/internal/util/taskutil"

	"github.com/carlmjohnson/versioninfo"
	"go.uber.org/zap"
)

// RestClient issues a single call against the Home Assistant REST API
// and returns the parsed JSON body, or a descriptive failure.
type RestClient interface {
	Do(ctx context.Context, method, path string, payload any) (json.RawMessage, error)
}

// Client is the HTTP implementation of RestClient. One request is in
// flight at a time; every call carries the bearer token and is bounded
// by the configured per-request timeout.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: cfg.RequestTimeout,
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger.With(zap.String("component", "rest")),
	}
}

func (c *Client) Do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	raw, err := taskutil.New(func() (*json.RawMessage, error) {
		body, err := c.call(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
		return &body, nil
	}).WithTimeout(c.timeout).Run()
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			return nil, err
		}
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}
	return raw, nil
}

func (c *Client) call(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "habackfill/"+versioninfo.Short())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RequestError{Method: method, Path: path, Status: resp.StatusCode, Body: string(data)}
	}
	if len(data) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

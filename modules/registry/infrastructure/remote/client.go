package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BackendError carries the error text the backend returned for a non-2xx
// response. The text is shown to the user verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

type errorResponse struct {
	Error string `json:"error"`
}

type ClientOptions struct {
	BaseURL string
	// Timeout of zero means requests are never timed out client-side.
	Timeout         time.Duration
	RequestIDHeader string
	Logger          *logrus.Logger
	// HTTPClient replaces the default client when set. Timeout is ignored then.
	HTTPClient *http.Client
}

// Client talks JSON to the registration backend.
type Client struct {
	baseURL         *url.URL
	httpClient      *http.Client
	requestIDHeader string
	logger          *logrus.Logger
}

func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid backend base URL: %q", opts.BaseURL)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:         u,
		httpClient:      httpClient,
		requestIDHeader: opts.RequestIDHeader,
		logger:          logger,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return errors.Wrap(err, "json marshal request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "http request")
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}

	m := getMetrics()
	m.inFlight.Inc()
	defer m.inFlight.Dec()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		m.requestsTotal.WithLabelValues(method, "error").Inc()
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).WithError(err).Warn("backend request failed")
		return errors.Wrap(err, "backend request")
	}
	defer func() { _ = resp.Body.Close() }()
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "backend response read")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		backendErr := &BackendError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP error! Status: %d", resp.StatusCode),
		}
		var payload errorResponse
		if err := json.Unmarshal(respBody, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			backendErr.Message = payload.Error
		}
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		}).Warn(backendErr.Message)
		return backendErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "json unmarshal response")
	}
	return nil
}

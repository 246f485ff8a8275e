package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"plingsync/internal/pling/business/services"
	"plingsync/metrics"
	"plingsync/pkg/logger"
)

// Response is the raw result of one call against the pling server. Jobs
// interpret status and body themselves, so non-2xx answers are returned
// here rather than as errors.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Transport executes one outbound call. Implemented by BaseClient;
// tests substitute a stub.
type Transport interface {
	Execute(ctx context.Context, method, endpoint string, payload interface{}) (*Response, error)
}

type BaseClient struct {
	ServerURL string
	log       logger.Logger
	client    *http.Client
	services.AuthEngine
}

func NewBaseClient(serverURL string, auth services.AuthEngine, writer io.Writer, logPrefix string) *BaseClient {
	return &BaseClient{
		ServerURL:  serverURL,
		log:        logger.NewLogger(writer, logPrefix),
		client:     &http.Client{Timeout: 30 * time.Second},
		AuthEngine: auth,
	}
}

func (c *BaseClient) Execute(ctx context.Context, method, endpoint string, payload interface{}) (*Response, error) {
	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", c.ServerURL, endpoint), bytes.NewBuffer(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/json")
	c.SetApiKey(req)

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	metrics.ObserveRequest(method, endpoint, resp.StatusCode, time.Since(started))
	c.log.Log("%s %s -> %d", method, endpoint, resp.StatusCode)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"plingsync/internal/pling/clients"
)

type call struct {
	method   string
	endpoint string
	payload  interface{}
}

type stubTransport struct {
	mu      sync.Mutex
	calls   []call
	handler func(method, endpoint string, payload interface{}) (*clients.Response, error)
}

func (s *stubTransport) Execute(ctx context.Context, method, endpoint string, payload interface{}) (*clients.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{method: method, endpoint: endpoint, payload: payload})
	s.mu.Unlock()
	return s.handler(method, endpoint, payload)
}

func (s *stubTransport) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func jsonResponse(t *testing.T, status int, v interface{}) *clients.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal stub response: %v", err)
	}
	return &clients.Response{StatusCode: status, Body: body}
}

func okResponse(t *testing.T, v interface{}) *clients.Response {
	return jsonResponse(t, http.StatusOK, v)
}

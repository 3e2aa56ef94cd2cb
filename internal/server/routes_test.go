package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"bookmark/internal/config"
)

// MockDBService is a mock implementation of database.Service for testing
type MockDBService struct {
	down bool
}

func (m *MockDBService) Health() map[string]string {
	if m.down {
		return map[string]string{"message": "db down", "error": "no reachable servers"}
	}
	return map[string]string{"message": "Mock DB is healthy"}
}

func (m *MockDBService) Database() *mongo.Database               { return nil }
func (m *MockDBService) EnsureIndexes(ctx context.Context) error { return nil }
func (m *MockDBService) Close() error                            { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func newTestServer(t *testing.T, db *MockDBService) *httptest.Server {
	t.Helper()
	s := newServer(testConfig(), db, nil)
	ts := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHandler(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"message":"Hello World"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ts = newTestServer(t, &MockDBService{down: true})
	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestUIRoutes(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})

	resp, err := http.Post(ts.URL+"/api/ui/theme/toggle", "application/json", nil)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"theme":"light","body_class":""}`, string(body))

	resp, err = http.Post(ts.URL+"/api/ui/popover/open", "application/json", strings.NewReader(`{"content_component":"AddCategory","props":{"slug":"go"}}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/ui/popover/close", "application/json", nil)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.JSONEq(t, `{"is_open":false,"content_component":"AddCategory","props":{"slug":"go"}}`, string(body))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestPreflight(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/categories", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, &MockDBService{})
	resp, err := http.Get(ts.URL + "/api/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

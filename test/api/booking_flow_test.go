// Black-box API tests against a running instance. Set API_TEST_URL to
// enable, e.g. API_TEST_URL=http://localhost:8080 go test ./test/api/...
package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("API_TEST_URL")
	os.Exit(m.Run())
}

func skipWithoutServer(t *testing.T) {
	t.Helper()
	if baseURL == "" {
		t.Skip("API_TEST_URL not set")
	}
}

func doJSON(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, baseURL+"/api/v1"+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()
	return resp, decoded
}

func TestHealthEndpoints(t *testing.T) {
	skipWithoutServer(t)

	resp, err := http.Get(baseURL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBookingFlow(t *testing.T) {
	skipWithoutServer(t)

	token := os.Getenv("API_TEST_TOKEN")
	if token == "" {
		t.Skip("API_TEST_TOKEN not set")
	}

	resp, psy := doJSON(t, http.MethodPost, "/psychologists", token, map[string]interface{}{
		"name":                 "Dr Test",
		"email":                fmt.Sprintf("test-%d@example.com", time.Now().UnixNano()),
		"password":             "test-password-1",
		"timezone":             "Australia/Sydney",
		"telehealth_available": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	psyID := psy["data"].(map[string]interface{})["id"].(string)

	resp, _ = doJSON(t, http.MethodPost, "/psychologists/"+psyID+"/availability", token, map[string]interface{}{
		"day_of_week":  1,
		"start_minute": 540,
		"end_minute":   720,
		"valid_from":   time.Now().Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, regen := doJSON(t, http.MethodPost, "/psychologists/"+psyID+"/slots/regenerate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, regen["data"])

	resp, slots := doJSON(t, http.MethodGet, "/psychologists/"+psyID+"/slots", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, slots["data"])
}

package e2e

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext holds state between test steps.
type TestContext struct {
	BaseURL          string
	APIKey           string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	// Authorization is sent verbatim; empty means no header.
	Authorization string
	NoteIDs       []string
}

// NewTestContext reads BASE_URL and API_KEY and starts with valid credentials.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	apiKey := os.Getenv("API_KEY")

	tc := &TestContext{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	tc.UseUsername(apiKey)
	return tc
}

// UseUsername sends username as the Basic credential with a throwaway password.
func (tc *TestContext) UseUsername(username string) {
	tc.Authorization = "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":x"))
}

func (tc *TestContext) UseAPIKey()                { tc.UseUsername(tc.APIKey) }
func (tc *TestContext) ClearAuthorization()       { tc.Authorization = "" }
func (tc *TestContext) SetAuthorization(h string) { tc.Authorization = h }

// Do sends a request with the current credentials and stores the response.
// A nil body sends no body at all.
func (tc *TestContext) Do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.Authorization != "" {
		req.Header.Set("Authorization", tc.Authorization)
	}

	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) GetResponseField(field string) (any, error) {
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	value, ok := data[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}
	return value, nil
}

// ResponseContains checks if the response body contains a field or text.
func (tc *TestContext) ResponseContains(text string) bool {
	if strings.Contains(string(tc.LastResponseBody), text) {
		return true
	}
	var data map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &data); err == nil {
		if _, ok := data[text]; ok {
			return true
		}
	}
	return false
}

func (tc *TestContext) GetLastResponseStatus() int {
	if tc.LastResponse == nil {
		return 0
	}
	return tc.LastResponse.StatusCode
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	if tc.LastResponse == nil {
		return ""
	}
	return tc.LastResponse.Header.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.LastResponseBody
}

func (tc *TestContext) SaveNoteID(id string) {
	tc.NoteIDs = append(tc.NoteIDs, id)
}

// LastNoteID returns the most recently saved note id.
func (tc *TestContext) LastNoteID() string {
	if len(tc.NoteIDs) == 0 {
		return ""
	}
	return tc.NoteIDs[len(tc.NoteIDs)-1]
}

func (tc *TestContext) SavedNoteIDs() []string {
	return tc.NoteIDs
}

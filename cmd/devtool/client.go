package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/osse101/Tycoon_Go/internal/server"
)

const requestTimeout = 5 * time.Second

// apiClient talks to a running tycoon server
type apiClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// newAPIClient reads API_URL and API_KEY, defaulting to a local server
func newAPIClient() *apiClient {
	baseURL := os.Getenv(envAPIURL)
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  os.Getenv(envAPIKey),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *apiClient) newRequest(path string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set(server.HeaderAPIKey, c.apiKey)
	}
	return req, nil
}

// getJSON fetches path and decodes a 200 response into out
func (c *apiClient) getJSON(path string, out interface{}) error {
	req, err := c.newRequest(path)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Package retrieval grounds generative answers: it queries the external
// embedding-search service for relevant text chunks, pre-matches the
// configured keyword list, and deduplicates source snippets for the
// references section.
package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"urbangpt/logging"
)

// searchTemperature is sent with every search request.
const searchTemperature = 0.5

type searchRequest struct {
	Question    string  `json:"question"`
	Temperature float64 `json:"temperature"`
}

type searchResponse struct {
	Context []string `json:"context"`
}

// Client queries the embedding search service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a search client. An empty baseURL disables retrieval:
// every Search returns no context.
func NewClient(baseURL string, log *logging.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		log:        log,
	}
}

// Search returns the most relevant text chunks for a question. Any
// failure (dial error, non-2xx status, malformed body) degrades to an
// empty context so the pipeline continues without grounding.
func (c *Client) Search(ctx context.Context, question string) []string {
	if c.baseURL == "" {
		return nil
	}

	body, err := json.Marshal(searchRequest{Question: question, Temperature: searchTemperature})
	if err != nil {
		c.log.Errorf("retrieval: failed to encode request: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		c.log.Errorf("retrieval: failed to build request: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("retrieval: search request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Errorf("retrieval: search returned status %d", resp.StatusCode)
		return nil
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.Errorf("retrieval: failed to decode response: %v", err)
		return nil
	}

	return decoded.Context
}

// Package wiki provides substance data sources: a client for the
// PsychonautWiki GraphQL API and an offline catalog file
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mrcode/dose-timeline/internal/models"
)

// Source fetches substances matching a name query
type Source interface {
	FetchSubstances(ctx context.Context, query string) ([]models.Substance, error)
}

const substanceQuery = `query SubstanceQuery($substance: String) {
  substances(query: $substance) {
    name
    crossTolerances
    roas {
      name
      dose {
        units
        threshold
        heavy
        common { min max }
        light { min max }
        strong { min max }
      }
      duration {
        afterglow { min max units }
        comeup { min max units }
        duration { min max units }
        offset { min max units }
        onset { min max units }
        peak { min max units }
        total { min max units }
      }
    }
    uncertainInteractions { name }
    unsafeInteractions { name }
    dangerousInteractions { name }
  }
}`

// Client handles communication with the substance GraphQL API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data *struct {
		Substances []*substancePayload `json:"substances"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// buildRequest creates the GraphQL POST request
func (c *Client) buildRequest(ctx context.Context, query string) (*http.Request, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     substanceQuery,
		Variables: map[string]string{"substance": query},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// doRequest executes an HTTP request and returns the response body
func (c *Client) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// GraphQL servers report validation failures as 4xx with an errors body
		var gqlResp graphQLResponse
		if json.Unmarshal(body, &gqlResp) == nil && len(gqlResp.Errors) > 0 {
			return nil, newResponseError(gqlResp.Errors)
		}
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// FetchSubstances retrieves every substance matching query
func (c *Client) FetchSubstances(ctx context.Context, query string) ([]models.Substance, error) {
	req, err := c.buildRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	body, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var resp graphQLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing substances: %w", err)
	}

	if len(resp.Errors) > 0 {
		return nil, newResponseError(resp.Errors)
	}
	if resp.Data == nil || resp.Data.Substances == nil {
		return nil, NewDataError("Missing substance data.")
	}

	return convertSubstances(resp.Data.Substances), nil
}

// newResponseError aggregates server-reported errors
func newResponseError(errs []graphQLError) *DataError {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return NewDataError(messages...)
}

// TestConnection checks that the API answers a small query
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.FetchSubstances(ctx, "caffeine")
	return err
}

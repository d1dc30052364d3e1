package driver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/utils"
)

const maxErrorBodyBytes = 4 << 10

// PageParams are the query parameters of one list-endpoint request.
// Empty fields are omitted from the query string.
type PageParams struct {
	Size  int
	After string
	Since string
	Sort  string
}

// PageResponse is the decoded JSON:API page envelope.
type PageResponse struct {
	Data  []Resource `json:"data"`
	Links PageLinks  `json:"links"`
}

type PageLinks struct {
	Next string `json:"next"`
	Prev string `json:"prev"`
}

// Resource is one JSON:API row before flattening.
type Resource struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Attributes    map[string]any `json:"attributes"`
	Relationships map[string]any `json:"relationships"`
}

type restClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	retries int
}

func newRESTClient(config *Config) *restClient {
	return &restClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		retries: config.RetryCount,
	}
}

// FetchPage issues one authenticated GET for a page of records.
// Recoverable failures (429, 5xx, network) are retried with backoff,
// re-issuing the identical request; auth and malformed-body failures
// abort immediately.
func (c *restClient) FetchPage(ctx context.Context, path string, params PageParams) (*PageResponse, error) {
	var page *PageResponse
	err := utils.RetryOnBackoff(ctx, c.retries, constants.DefaultRetryBackoff, func() error {
		fetched, err := c.fetchPage(ctx, path, params)
		if err != nil {
			return err
		}
		page = fetched
		return nil
	})
	return page, err
}

func (c *restClient) fetchPage(ctx context.Context, path string, params PageParams) (*PageResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %s", err)
	}

	query := url.Values{}
	if params.Size > 0 {
		query.Set("page[size]", strconv.Itoa(params.Size))
	}
	if params.After != "" {
		query.Set("after", params.After)
	}
	if params.Since != "" {
		query.Set("filter[since]", params.Since)
	}
	if params.Sort != "" {
		query.Set("sort", params.Sort)
	}
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &APIError{Class: ErrorClassTransient, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      classifyStatus(resp.StatusCode),
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return decodePage(resp.Body)
}

// decodePage validates the page envelope; a body that is not JSON or
// lacks the data array cannot safely drive pagination or cursor state.
func decodePage(body io.Reader) (*PageResponse, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &APIError{Class: ErrorClassTransient, Message: fmt.Sprintf("failed to read response body: %s", err)}
	}

	envelope := struct {
		Data  *[]Resource `json:"data"`
		Links PageLinks   `json:"links"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &APIError{Class: ErrorClassMalformed, Message: fmt.Sprintf("response body is not valid JSON: %s", err)}
	}
	if envelope.Data == nil {
		return nil, &APIError{Class: ErrorClassMalformed, Message: "response body is missing the data array"}
	}

	return &PageResponse{
		Data:  *envelope.Data,
		Links: envelope.Links,
	}, nil
}

// NextCursor extracts the pagination cursor for the following page from
// the links.next URL, or "" at end of stream. Only the absent link
// terminates pagination; an empty record list alone never does, the API
// may return an empty page with a valid forward cursor.
func NextCursor(page *PageResponse) string {
	if page.Links.Next == "" {
		return ""
	}

	parsed, err := url.Parse(page.Links.Next)
	if err != nil {
		return ""
	}

	query := parsed.Query()
	if after := query.Get("page[after]"); after != "" {
		return after
	}
	return query.Get("after")
}

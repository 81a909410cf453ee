// Package baas implements the repository contract against a managed
// backend-as-a-service exposing a PostgREST-style data API and a GoTrue-style
// identity API. The platform signals "not found" as an empty result set and
// constraint failures as error codes in a JSON body; both are normalized here
// into the shared taxonomy.
package baas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

const (
	restPath = "/rest/v1/"
	authPath = "/auth/v1/"

	// Postgres unique-violation SQLSTATE, surfaced verbatim by the data API.
	codeUniqueViolation = "23505"
)

// Client is the low-level REST client shared by the data repository and the
// identity client.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     *logrus.Logger
}

// NewClient builds a client for the project endpoint. The anon key rides on
// every request as both the apikey header and the bearer token.
func NewClient(baseURL, anonKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// apiError is the error body the platform returns on data API failures.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e *apiError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// do issues one request against the data API. A non-nil body is sent as JSON;
// a non-nil out receives the decoded response. Write requests ask for the
// representation back so callers get the persisted row.
func (c *Client) do(op, method, table string, query url.Values, body, out interface{}) error {
	u := c.baseURL + restPath + table
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return repository.WrapError(repository.ErrConnection, op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return repository.WrapError(repository.ErrConnection, op, err)
	}

	if resp.StatusCode >= 400 {
		return c.classify(op, resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s: decoding response: %w", op, err)
		}
	}
	return nil
}

// classify maps a data API error response onto the shared taxonomy. Anything
// unrecognized keeps the platform's own error for diagnostics.
func (c *Client) classify(op string, status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr = apiError{Code: fmt.Sprint(status), Message: strings.TrimSpace(string(body))}
	}

	switch {
	case apiErr.Code == codeUniqueViolation, status == http.StatusConflict:
		return repository.WrapError(repository.ErrConstraintViolation, op, &apiErr)
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		return repository.WrapError(repository.ErrConnection, op, &apiErr)
	}
	return fmt.Errorf("%s: %w", op, &apiErr)
}

// eq builds the data API's equality filter value.
func eq(v interface{}) string { return fmt.Sprintf("eq.%v", v) }

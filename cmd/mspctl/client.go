package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appErrors "github.com/noah-isme/msp-aci-api/pkg/errors"
)

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// getJSON fetches path and decodes the envelope data into dest.
func (c *apiClient) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, _, err := c.do(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}
	return decodeEnvelope(path, body, dest)
}

// postJSON issues a body-less POST and decodes the envelope data into dest.
func (c *apiClient) postJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, _, err := c.do(ctx, http.MethodPost, path, query)
	if err != nil {
		return err
	}
	return decodeEnvelope(path, body, dest)
}

// download returns the raw body and the filename from Content-Disposition.
func (c *apiClient) download(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	body, header, err := c.do(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, "", err
	}
	return body, attachmentName(header.Get("Content-Disposition")), nil
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values) ([]byte, http.Header, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var env envelope
		if json.Unmarshal(body, &env) == nil && env.Error != nil {
			return nil, nil, fmt.Errorf("%s: %s (%s)", path, env.Error.Message, env.Error.Code)
		}
		return nil, nil, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}
	return body, resp.Header, nil
}

func decodeEnvelope(path string, body []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("empty response from %s", path)
	}
	return json.Unmarshal(env.Data, dest)
}

func attachmentName(disposition string) string {
	const marker = "filename="
	idx := strings.Index(disposition, marker)
	if idx < 0 {
		return ""
	}
	return strings.Trim(disposition[idx+len(marker):], `"`)
}

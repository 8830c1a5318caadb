package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPError is a non-2xx response from an upstream API.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// DoGet performs a GET request with the given headers and returns the
// response body and status code. Non-2xx responses are drained and returned
// as *HTTPError. The caller owns closing the returned body.
func DoGet(ctx context.Context, client *http.Client, url string, headers map[string]string) (io.ReadCloser, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	log.WithFields(log.Fields{
		"url":     url,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("upstream GET")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, resp.StatusCode, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        url,
		}
	}
	return resp.Body, resp.StatusCode, nil
}

// DoGetJSON performs a GET request and decodes the JSON response into dest.
func DoGetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, dest any) error {
	body, _, err := DoGet(ctx, client, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dest); err != nil {
		return fmt.Errorf("parse response from %s: %w", url, err)
	}
	return nil
}

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxBodyBytes caps how much of a provider response is read
const MaxBodyBytes = 2 << 20

// ReadResponseBody reads at most MaxBodyBytes and closes the HTTP response body
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	defer closeBody(resp)
	return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
}

// DecodeJSONResponse decodes a 200 OK JSON response into target and closes the body
func DecodeJSONResponse(resp *http.Response, target any) error {
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	return json.NewDecoder(io.LimitReader(resp.Body, MaxBodyBytes)).Decode(target)
}

// EnsureStatusOK checks if the response status is 200 OK
func EnsureStatusOK(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, resp.Status)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if closeErr := resp.Body.Close(); closeErr != nil {
		slog.Error("Failed to close response body", "error", closeErr)
	}
}

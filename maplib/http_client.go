package maplib

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type httpClient struct {
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if h.timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), h.timeout)
		req = req.WithContext(ctx)
		resp, err := h.do(req)

		if err != nil {
			cancel()

			return nil, err
		}

		resp.Body = &cancelOnCloseBody{ReadCloser: resp.Body, cancel: cancel}

		return resp, nil
	}

	return h.do(req)
}

func (h httpClient) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		if resp != nil {
			flushResponse(resp.Body)
		}

		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		flushResponse(resp.Body)

		return nil, fmt.Errorf("%w: netloc has responded with %s", ErrNetwork, resp.Status)
	}

	return resp, nil
}

type cancelOnCloseBody struct {
	io.ReadCloser

	cancel context.CancelFunc
}

func (c *cancelOnCloseBody) Close() error {
	defer c.cancel()

	return c.ReadCloser.Close()
}

func flushResponse(body io.ReadCloser) {
	io.Copy(io.Discard, body) // nolint: errcheck
	body.Close()
}

// NewHTTPClient prepares a new HTTP client which sets a user agent,
// applies a timeout to each request and converts transport failures and
// HTTP statuses >= 400 into ErrNetwork.
//
// There are no retries: a single failed request is a failed request.
func NewHTTPClient(client *http.Client, userAgent string, timeout time.Duration) HTTPClient {
	return httpClient{
		userAgent: userAgent,
		timeout:   timeout,
		client:    client,
	}
}

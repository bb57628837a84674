// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pdf converts rendered HTML into PDF bytes. Conversion happens in
// a Gotenberg service (headless Chromium behind an HTTP API); one Client
// is shared by every request and is safe for concurrent use.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// convertPath is Gotenberg's Chromium HTML conversion route.
const convertPath = "/forms/chromium/convert/html"

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 2048

// BackendError reports a failed conversion. StatusCode is zero when the
// backend could not be reached at all.
type BackendError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rendering backend: status %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("rendering backend: %s: %v", e.Message, e.Err)
	}
	return "rendering backend: " + e.Message
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError reports whether err is, or wraps, a *BackendError.
func IsBackendError(err error) bool {
	var be *BackendError
	return errors.As(err, &be)
}

// Client talks to a Gotenberg instance.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the Gotenberg instance at baseURL. timeout
// bounds a single conversion; zero means 60 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Render converts markup into a PDF laid out with opts. Options left unset
// fall back to DefaultPageOptions. One attempt is made; failures come back
// as *BackendError.
func (c *Client) Render(ctx context.Context, markup string, opts PageOptions) ([]byte, error) {
	opts = Merge(DefaultPageOptions(), opts)

	body, contentType, err := buildForm(markup, opts)
	if err != nil {
		return nil, &BackendError{Message: "build request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+convertPath, body)
	if err != nil {
		return nil, &BackendError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &BackendError{Message: "http", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &BackendError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Message: "read body", Err: err}
	}
	if len(data) == 0 {
		return nil, &BackendError{Message: "empty document"}
	}

	slog.Debug("pdf rendered",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start).String(),
	)
	return data, nil
}

// buildForm encodes the markup and layout options as the multipart form
// Gotenberg expects.
func buildForm(markup string, opts PageOptions) (io.Reader, string, error) {
	width, height, err := opts.size()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, "", err
	}
	if _, err := io.WriteString(part, markup); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"paperWidth", width},
		{"paperHeight", height},
	}
	if opts.Margin != nil {
		for _, m := range [][2]string{
			{"marginTop", opts.Margin.Top},
			{"marginRight", opts.Margin.Right},
			{"marginBottom", opts.Margin.Bottom},
			{"marginLeft", opts.Margin.Left},
		} {
			if m[1] != "" {
				fields = append(fields, m)
			}
		}
	}
	if opts.PrintBackground != nil {
		fields = append(fields, [2]string{"printBackground", strconv.FormatBool(*opts.PrintBackground)})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

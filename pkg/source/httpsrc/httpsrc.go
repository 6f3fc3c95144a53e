// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package httpsrc provides a content source served over HTTP.
package httpsrc

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/cloudygreybeard/vidshelf/pkg/adapter"
	"github.com/cloudygreybeard/vidshelf/pkg/source"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultRetryMax = 2

	// maxBodySize caps a single manifest or content file.
	maxBodySize = 32 << 20
)

func init() {
	adapter.RegisterSource("http", Open)
	adapter.RegisterSource("https", Open)
}

// Source fetches content paths relative to a base URL.
type Source struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// Open is the registered factory.
func Open(location string, opts source.Options) (source.Source, error) {
	return New(location, opts)
}

// New creates a Source for the base URL. A path on the base URL is kept as
// a prefix, so "https://host/app" serves "/contents/x.json" from
// "https://host/app/contents/x.json".
func New(location string, opts source.Options) (*Source, error) {
	base, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base URL %s has no host", location)
	}

	client := opts.Client
	if client == nil {
		client = NewClient()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Source{base: base, client: client, timeout: timeout, logger: logger}, nil
}

// Name returns the source identifier.
func (s *Source) Name() string { return "http" }

// Location returns the base URL.
func (s *Source) Location() string { return s.base.String() }

// URL returns the absolute URL for a content path.
func (s *Source) URL(p string) string {
	return s.base.JoinPath(p).String()
}

// Fetch performs a GET for the content path and returns the decoded body.
// A non-2xx status is returned as *source.StatusError.
func (s *Source) Fetch(ctx context.Context, p string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	target := s.URL(p)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	s.logger.Debug("fetched content", "url", target, "status", resp.StatusCode,
		"encoding", resp.Header.Get("Content-Encoding"))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &source.StatusError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Location:   resp.Header.Get("Location"),
		}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", target, err)
	}
	if closer, ok := body.(io.Closer); ok {
		defer closer.Close()
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("reading %s: body exceeds %d bytes", target, maxBodySize)
	}
	return data, nil
}

func decodeBody(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
		return resp.Body, nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}

// Transport retries idempotent requests that fail before a response.
type Transport struct {
	Base http.RoundTripper

	// RetryMax is the number of retries after the first attempt.
	RetryMax int
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	max := t.RetryMax
	if max < 0 || req.Method != http.MethodGet || (req.Body != nil && req.Body != http.NoBody) {
		max = 0
	}

	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		resp, err := base.RoundTrip(req.Clone(req.Context()))
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// NewClient returns the client used when Options.Client is nil.
func NewClient() *http.Client {
	return &http.Client{
		Transport: &Transport{
			Base: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
			},
			RetryMax: defaultRetryMax,
		},
	}
}

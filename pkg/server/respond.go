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

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudygreybeard/vidshelf/pkg/playlist"
	"github.com/cloudygreybeard/vidshelf/pkg/youtube"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

var errNotFound = errors.New("not found")

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), RequestID: RequestID(r.Context())})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var apiErr *youtube.APIError
	var bodyErr *badRequestError
	switch {
	case errors.As(err, &bodyErr),
		errors.Is(err, playlist.ErrEmptyName),
		errors.Is(err, playlist.ErrIndexOutOfRange),
		errors.Is(err, playlist.ErrInvalidVideo),
		errors.Is(err, youtube.ErrInvalidURL),
		errors.Is(err, youtube.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, errNotFound),
		errors.Is(err, playlist.ErrNotFound),
		errors.Is(err, playlist.ErrVideoNotFound),
		errors.Is(err, youtube.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, youtube.ErrMissingCredential):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...interface{}) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

// decodeBody reads a JSON request body into v. An empty body leaves v
// unchanged.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

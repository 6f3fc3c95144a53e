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

package youtube

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential is returned when an API call is attempted
	// without an API key.
	ErrMissingCredential = errors.New("youtube: API key not configured")

	// ErrInvalidURL is returned when a URL carries no video or playlist id.
	ErrInvalidURL = errors.New("youtube: invalid URL")

	// ErrEmptyQuery is returned for a blank search query.
	ErrEmptyQuery = errors.New("youtube: empty search query")

	// ErrNotFound is returned when the API reports no matching resource.
	ErrNotFound = errors.New("youtube: not found")
)

// APIError is a non-2xx response from the Data API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e == nil {
		return "youtube API error"
	}
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		return fmt.Sprintf("youtube API error: %d", e.Status)
	}
	return fmt.Sprintf("youtube API error: %d - %s", e.Status, detail)
}

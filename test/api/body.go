/*
Copyright 2026 the Kiosk API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidConfig is returned when the environment holds unusable settings.
	ErrInvalidConfig = errors.New("invalid test configuration")

	// ErrAPIUnavailable is returned instead of sending a request when the
	// session has determined the API is down.  Suites turn it into a skip.
	ErrAPIUnavailable = errors.New("API unavailable")
)

// ParsedBody is a response body that either decoded as JSON or did not.
// Consumers type switch on JSONBody and RawBody.
type ParsedBody interface {
	isParsedBody()
}

// JSONBody holds a successfully decoded body.
type JSONBody struct {
	Value any
}

// RawBody holds a body that is not JSON, and why it failed to decode.
type RawBody struct {
	Text string
	Err  error
}

func (JSONBody) isParsedBody() {}
func (RawBody) isParsedBody()  {}

// ParseBody decodes data as JSON, falling back to the raw text.  A decode
// failure is not an error, many kiosk endpoints answer with HTML or plain text.
func ParseBody(data []byte) ParsedBody {
	var value any

	if err := json.Unmarshal(data, &value); err != nil {
		return RawBody{Text: string(data), Err: err}
	}

	return JSONBody{Value: value}
}

// Text returns a printable rendition, truncated to limit runes if positive.
func Text(body ParsedBody, limit int) string {
	var text string

	switch b := body.(type) {
	case JSONBody:
		data, err := json.Marshal(b.Value)
		if err != nil {
			return ""
		}

		text = string(data)
	case RawBody:
		text = b.Text
	}

	if runes := []rune(text); limit > 0 && len(runes) > limit {
		return string(runes[:limit]) + "..."
	}

	return text
}

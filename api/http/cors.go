// Copyright 2022 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package http

import (
	"net/http"
	"strings"
)

func allowAllOrigins(r *http.Request) bool { return true }

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// NewOriginChecker returns a websocket origin check accepting the given
// origins. Requests without an Origin header (devices) are always
// accepted, and an empty list accepts every origin.
func NewOriginChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return allowAllOrigins
	}
	originSet := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin == "*" {
			return allowAllOrigins
		}
		originSet[normalizeOrigin(origin)] = struct{}{}
	}
	return func(r *http.Request) bool {
		actual, ok := r.Header[HdrKeyOrigin]
		if !ok {
			// Origin header not present
			return true
		} else if len(actual) == 0 {
			return false
		}
		_, allowed := originSet[normalizeOrigin(actual[0])]
		return allowed
	}
}

// SetAcceptedOrigins restricts the origins allowed to open a websocket.
func SetAcceptedOrigins(origins []string) {
	wsUpgrader.CheckOrigin = NewOriginChecker(origins)
}

// Copyright 2023 Northern.tech AS
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

package app

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/utils"
)

const tokenBytes = 32

type tokenEntry struct {
	username string
	issuedAt time.Time
}

// TokenStore keeps the opaque bearer tokens of logged in operators.
// Tokens never expire unless a TTL is configured.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]tokenEntry
	ttl    time.Duration
	clock  utils.Clock
}

// NewTokenStore returns an empty store. A ttl <= 0 disables expiry.
func NewTokenStore(ttl time.Duration, clock utils.Clock) *TokenStore {
	return &TokenStore{
		tokens: make(map[string]tokenEntry),
		ttl:    ttl,
		clock:  utils.ClockOrDefault(clock),
	}
}

// Issue creates a fresh token for username.
func (s *TokenStore) Issue(username string) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = tokenEntry{
		username: username,
		issuedAt: s.clock.Now(),
	}
	s.mu.Unlock()
	return token, nil
}

// Validate returns the operator owning token.
func (s *TokenStore) Validate(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	s.mu.RLock()
	entry, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok || s.expired(entry, s.clock.Now()) {
		return "", false
	}
	return entry.username, true
}

// Revoke forgets token. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Purge removes expired tokens and returns how many were removed.
func (s *TokenStore) Purge(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, entry := range s.tokens {
		if s.expired(entry, now) {
			delete(s.tokens, token)
			n++
		}
	}
	return n
}

// Len returns the number of stored tokens.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}

func (s *TokenStore) expired(entry tokenEntry, now time.Time) bool {
	return s.ttl > 0 && !now.Before(entry.issuedAt.Add(s.ttl))
}

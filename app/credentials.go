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
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks operator credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) bool
}

// StaticAuthenticator accepts a single configured operator. The password
// may be given as a bcrypt hash or in plain text.
type StaticAuthenticator struct {
	Username string
	Password string
}

// NewStaticAuthenticator returns an authenticator for one operator.
func NewStaticAuthenticator(username, password string) *StaticAuthenticator {
	return &StaticAuthenticator{
		Username: username,
		Password: password,
	}
}

func (a *StaticAuthenticator) Authenticate(
	_ context.Context,
	username string,
	password string,
) bool {
	if a.Username == "" || a.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare(
		[]byte(username), []byte(a.Username),
	) == 1
	var passOK bool
	if isBcryptHash(a.Password) {
		passOK = bcrypt.CompareHashAndPassword(
			[]byte(a.Password), []byte(password),
		) == nil
	} else {
		passOK = subtle.ConstantTimeCompare(
			[]byte(password), []byte(a.Password),
		) == 1
	}
	return userOK && passOK
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") ||
		strings.HasPrefix(s, "$2b$") ||
		strings.HasPrefix(s, "$2y$")
}

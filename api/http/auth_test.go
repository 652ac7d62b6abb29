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

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/smartc-ai/devicehub/app"
	"github.com/smartc-ai/devicehub/model"
)

func TestLogin(t *testing.T) {
	testCases := []struct {
		Name string
		Body interface{}

		Login      bool
		LoginToken string
		LoginError error

		HTTPStatus int
		Response   map[string]interface{}
	}{
		{
			Name: "ok",
			Body: model.LoginRequest{
				Username: testUsername,
				Password: "secret",
			},

			Login:      true,
			LoginToken: testToken,

			HTTPStatus: http.StatusOK,
			Response: map[string]interface{}{
				"token":    testToken,
				"username": testUsername,
			},
		},
		{
			Name: "ko, bad credentials",
			Body: model.LoginRequest{
				Username: testUsername,
				Password: "wrong",
			},

			Login:      true,
			LoginError: app.ErrUnauthorized,

			HTTPStatus: http.StatusUnauthorized,
			Response: map[string]interface{}{
				"error": "Invalid credentials",
			},
		},
		{
			Name: "ko, token generation failed",
			Body: model.LoginRequest{
				Username: testUsername,
				Password: "secret",
			},

			Login:      true,
			LoginError: errors.New("entropy exhausted"),

			HTTPStatus: http.StatusInternalServerError,
		},
		{
			Name: "ko, missing password",
			Body: map[string]interface{}{
				"username": testUsername,
			},

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name: "ko, malformed body",
			Body: []string{"admin"},

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			if tc.Login {
				req := tc.Body.(model.LoginRequest)
				hub.On("Login", contextMatcher, req.Username, req.Password).
					Return(tc.LoginToken, tc.LoginError)
			}

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodPost, APIURLLogin, tc.Body)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			body := decodeBody(t, w)
			for key, value := range tc.Response {
				assert.Equal(t, value, body[key], key)
			}
			hub.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	hub := newAuthorizedApp()
	hub.On("Logout", contextMatcher, testToken).Return()

	router, _ := NewRouter(hub)
	req := newRequest(http.MethodPost, APIURLLogout, nil)
	req.Header.Set(headerAuthorization, "Bearer "+testToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["success"])
	hub.AssertExpectations(t)
}

func TestLogoutUnauthorized(t *testing.T) {
	hub := newAuthorizedApp()

	router, _ := NewRouter(hub)
	req := newRequest(http.MethodPost, APIURLLogout, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	hub.AssertNotCalled(t, "Logout", contextMatcher, testToken)
}

// Copyright 2020 Northern.tech AS
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

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/rest.utils"

	"github.com/smartc-ai/devicehub/app"
)

const headerAuthorization = "Authorization"

// AuthMiddleware rejects requests without a valid operator token and puts
// the operator identity in the request context.
func AuthMiddleware(hub app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		ctx := req.Context()

		token := extractTokenFromRequest(req)
		if token == "" {
			rest.RenderError(c, http.StatusUnauthorized, errUnauthorized)
			c.Abort()
			return
		}
		username, err := hub.Authenticate(ctx, token)
		if err != nil {
			rest.RenderError(c, http.StatusUnauthorized, errUnauthorized)
			c.Abort()
			return
		}

		ctx = identity.WithContext(ctx, &identity.Identity{
			Subject: username,
			IsUser:  true,
		})
		c.Request = req.WithContext(ctx)
		c.Next()
	}
}

// extractTokenFromRequest accepts both a raw token and a bearer token.
func extractTokenFromRequest(req *http.Request) string {
	auth := strings.TrimSpace(req.Header.Get(headerAuthorization))
	if scheme, token, ok := strings.Cut(auth, " "); ok &&
		strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return auth
}

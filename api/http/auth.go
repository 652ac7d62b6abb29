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

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/app"
	"github.com/smartc-ai/devicehub/model"
)

// AuthController contains the operator session end-points
type AuthController struct {
	app app.App
}

// NewAuthController returns a new AuthController
func NewAuthController(app app.App) *AuthController {
	return &AuthController{app: app}
}

// Login responds to POST /api/login
func (h AuthController) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}

	token, err := h.app.Login(ctx, req.Username, req.Password)
	if err == app.ErrUnauthorized {
		rest.RenderError(c, http.StatusUnauthorized, errInvalidCredentials)
		return
	} else if err != nil {
		log.FromContext(ctx).Error(errors.Wrap(err, "failed to issue token"))
		rest.RenderError(c, http.StatusInternalServerError, errInternal)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}

// Logout responds to POST /api/logout
func (h AuthController) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	h.app.Logout(ctx, extractTokenFromRequest(c.Request))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

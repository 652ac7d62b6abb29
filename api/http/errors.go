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
)

// HTTP errors
var (
	errUnauthorized        = errors.New("Unauthorized")
	errInvalidCredentials  = errors.New("Invalid credentials")
	errDeviceNotFound      = errors.New("Device not found")
	errDeviceNotConnected  = errors.New("Device not connected")
	errCommandNotFound     = errors.New("Command not found")
	errScreenshotNotFound  = errors.New("No screenshot available")
	errInvalidDeviceSecret = errors.New("invalid device secret")
	errInternal            = errors.New("internal error")
)

// renderAppError maps the hub errors to their HTTP responses.
func renderAppError(c *gin.Context, err error) {
	switch errors.Cause(err) {
	case app.ErrDeviceNotFound:
		rest.RenderError(c, http.StatusNotFound, errDeviceNotFound)
	case app.ErrDeviceNotConnected:
		rest.RenderError(c, http.StatusNotFound, errDeviceNotConnected)
	case app.ErrCommandNotFound:
		rest.RenderError(c, http.StatusNotFound, errCommandNotFound)
	case app.ErrScreenshotNotFound:
		rest.RenderError(c, http.StatusNotFound, errScreenshotNotFound)
	case app.ErrUnauthorized:
		rest.RenderError(c, http.StatusUnauthorized, errUnauthorized)
	default:
		log.FromContext(c.Request.Context()).Error(err)
		rest.RenderError(c, http.StatusInternalServerError, errInternal)
	}
}

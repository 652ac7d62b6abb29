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
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/app"
)

const (
	defaultTimeout = time.Second * 10
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status            string  `json:"status"`
	DevicesConnected  int     `json:"devices_connected"`
	DevicesRegistered int     `json:"devices_registered"`
	Uptime            float64 `json:"uptime"`
}

// StatusController contains status-related end-points
type StatusController struct {
	app app.App
}

// NewStatusController returns a new StatusController
func NewStatusController(app app.App) *StatusController {
	return &StatusController{app: app}
}

// Health responds to GET /health with the hub counters
func (h StatusController) Health(c *gin.Context) {
	stats := h.app.Stats()
	c.JSON(http.StatusOK, HealthResponse{
		Status:            "ok",
		DevicesConnected:  stats.DevicesConnected,
		DevicesRegistered: stats.DevicesRegistered,
		Uptime:            h.app.Uptime().Seconds(),
	})
}

// Alive responds to GET /api/health/alive
func (h StatusController) Alive(c *gin.Context) {
	c.Writer.WriteHeader(http.StatusNoContent)
}

// Ready responds to GET /api/health/ready
func (h StatusController) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := h.app.HealthCheck(ctx)
	if err != nil {
		l.Error(errors.Wrap(err, "health check failed"))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.Writer.WriteHeader(http.StatusNoContent)
}

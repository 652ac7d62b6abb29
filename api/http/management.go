// Copyright 2021 Northern.tech AS
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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/app"
	"github.com/smartc-ai/devicehub/model"
)

// RemoteRequest is an uncorrelated request forwarded to a device; the
// device answers with a frame of its own.
type RemoteRequest struct {
	Type    model.MessageType
	Message string
}

// Remote requests served by the management API
var (
	RequestCaptureScreenshot = RemoteRequest{
		Type:    model.MessageTypeCaptureScreenshot,
		Message: "Screenshot requested",
	}
	RequestAudioDevices = RemoteRequest{
		Type:    model.MessageTypeGetAudioDevices,
		Message: "Audio devices requested",
	}
	RequestVideos = RemoteRequest{
		Type:    model.MessageTypeGetVideos,
		Message: "Videos requested",
	}
	RequestWifiScan = RemoteRequest{
		Type:    model.MessageTypeWifiScan,
		Message: "WiFi scan requested",
	}
	RequestSavedWifi = RemoteRequest{
		Type:    model.MessageTypeGetSavedWifi,
		Message: "Saved WiFi requested",
	}
)

// RemoteSetting is a settings change submitted to a device as a
// correlated command.
type RemoteSetting struct {
	Command string
	// Keys lists the body fields forwarded as parameters; the whole body
	// is forwarded when nil.
	Keys []string
	// Defaults fill the parameters missing from the body.
	Defaults map[string]interface{}
}

// Remote settings served by the management API
var (
	SettingAudio = RemoteSetting{
		Command: "set_audio",
		Keys:    []string{"input_device", "output_device"},
	}
	SettingVideo = RemoteSetting{
		Command: "set_video",
		Keys:    []string{"video_path"},
	}
	SettingWifiConnect = RemoteSetting{
		Command: "wifi_connect",
		Keys:    []string{"ssid", "password"},
	}
	SettingWakeword = RemoteSetting{
		Command: "set_wakeword",
		Keys:    []string{"enabled", "threshold"},
	}
	SettingSystem = RemoteSetting{
		Command: "set_system",
	}
	SettingTestMic = RemoteSetting{
		Command: "test_mic",
		Keys:    []string{},
	}
	SettingTestSpeaker = RemoteSetting{
		Command:  "test_speaker",
		Keys:     []string{"hdmi_audio"},
		Defaults: map[string]interface{}{"hdmi_audio": false},
	}
)

// Params extracts the command parameters from a request body.
func (s RemoteSetting) Params(body map[string]interface{}) map[string]interface{} {
	params := make(map[string]interface{}, len(s.Defaults)+len(body))
	for k, v := range s.Defaults {
		params[k] = v
	}
	if s.Keys == nil {
		for k, v := range body {
			params[k] = v
		}
		return params
	}
	for _, k := range s.Keys {
		if v, ok := body[k]; ok && v != nil {
			params[k] = v
		}
	}
	return params
}

// ManagementController contains the operator end-points
type ManagementController struct {
	app app.App
}

// NewManagementController returns a new ManagementController
func NewManagementController(app app.App) *ManagementController {
	return &ManagementController{app: app}
}

// ListDevices responds to GET /api/devices
func (h ManagementController) ListDevices(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"devices": h.app.ListDevices(ctx),
	})
}

// GetDevice responds to GET /api/devices/:id
func (h ManagementController) GetDevice(c *gin.Context) {
	ctx := c.Request.Context()

	device, err := h.app.GetDevice(ctx, c.Param("id"))
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// GetDeviceHealth responds to GET /api/devices/:id/health
func (h ManagementController) GetDeviceHealth(c *gin.Context) {
	ctx := c.Request.Context()

	device, err := h.app.GetDevice(ctx, c.Param("id"))
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, device.Health())
}

// SubmitCommand responds to POST /api/devices/:id/command
func (h ManagementController) SubmitCommand(c *gin.Context) {
	req := model.CommandRequest{}
	if err := bindJSON(c, &req); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	h.submit(c, c.Param("id"), req.Name(), req.Arguments())
}

// SubmitSetting returns the handler forwarding a remote setting to the
// device in the path
func (h ManagementController) SubmitSetting(setting RemoteSetting) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := map[string]interface{}{}
		if c.Request.ContentLength != 0 {
			if err := bindJSON(c, &body); err != nil {
				rest.RenderError(c, http.StatusBadRequest, err)
				return
			}
		}
		h.submit(c, c.Param("id"), setting.Command, setting.Params(body))
	}
}

func (h ManagementController) submit(
	c *gin.Context,
	deviceID string,
	name string,
	params map[string]interface{},
) {
	ctx := c.Request.Context()

	cmd, err := h.app.SubmitCommand(ctx, deviceID, name, params)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"commandId": cmd.ID,
	})
}

// SendRequest returns the handler forwarding req to the device in the path
func (h ManagementController) SendRequest(req RemoteRequest) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		err := h.app.SendToDevice(ctx, c.Param("id"), &model.OutboundMessage{
			Type: req.Type,
		})
		if err != nil {
			renderAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": req.Message,
		})
	}
}

// GetCommand responds to GET /api/commands/:id
func (h ManagementController) GetCommand(c *gin.Context) {
	ctx := c.Request.Context()

	commandID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		rest.RenderError(c, http.StatusBadRequest,
			errors.New("invalid command id"))
		return
	}
	cmd, err := h.app.GetCommand(ctx, commandID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, cmd)
}

// GetDeviceCommands responds to GET /api/devices/:id/commands
func (h ManagementController) GetDeviceCommands(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := parseLimit(c)
	if err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	commands, err := h.app.GetDeviceCommands(ctx, c.Param("id"), limit)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commands": commands})
}

// GetDeviceLogs responds to GET /api/devices/:id/logs
func (h ManagementController) GetDeviceLogs(c *gin.Context) {
	ctx := c.Request.Context()

	limit, err := parseLimit(c)
	if err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	logs, err := h.app.GetDeviceLogs(ctx, c.Param("id"), limit)
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetScreenshot responds to GET /api/devices/:id/screenshot
func (h ManagementController) GetScreenshot(c *gin.Context) {
	ctx := c.Request.Context()

	shot, err := h.app.GetScreenshot(ctx, c.Param("id"))
	if err != nil {
		renderAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, shot)
}

// GetConfig responds to GET /api/devices/:id/config with the cached
// configuration and asks the device for a fresh copy
func (h ManagementController) GetConfig(c *gin.Context) {
	ctx := c.Request.Context()
	deviceID := c.Param("id")

	device, err := h.app.GetDevice(ctx, deviceID)
	if err != nil {
		renderAppError(c, err)
		return
	}
	err = h.app.SendToDevice(ctx, deviceID, &model.OutboundMessage{
		Type: model.MessageTypeGetConfig,
	})
	if err != nil {
		renderAppError(c, err)
		return
	}
	config := device.Config
	if config == nil {
		config = map[string]interface{}{}
	}
	c.JSON(http.StatusOK, gin.H{
		"config":  config,
		"message": "Config requested from device",
	})
}

// UpdateConfig responds to POST /api/devices/:id/config
func (h ManagementController) UpdateConfig(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	req := model.ConfigRequest{}
	if err := bindJSON(c, &req); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		rest.RenderError(c, http.StatusBadRequest, err)
		return
	}

	err := h.app.SendToDevice(ctx, c.Param("id"), &model.OutboundMessage{
		Type:   model.MessageTypeUpdateConfig,
		Config: req.Config,
	})
	if err != nil {
		renderAppError(c, err)
		return
	}
	l.Infof("config update sent to device %s", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Config update sent to device",
	})
}

func bindJSON(c *gin.Context, v interface{}) error {
	rawData, err := c.GetRawData()
	if err != nil {
		return errors.Wrap(err, "failed to read request body")
	}
	if err = json.Unmarshal(rawData, v); err != nil {
		return errors.Wrap(err, "malformed request body")
	}
	return nil
}

func parseLimit(c *gin.Context) (int, error) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return limit, nil
}

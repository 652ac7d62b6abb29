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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/smartc-ai/devicehub/app"
	app_mocks "github.com/smartc-ai/devicehub/app/mocks"
	"github.com/smartc-ai/devicehub/model"
)

const (
	testToken    = "0123456789abcdef"
	testUsername = "admin"
	testDeviceID = "d1"
)

var contextMatcher = mock.MatchedBy(func(_ context.Context) bool { return true })

func newAuthorizedApp() *app_mocks.App {
	hub := &app_mocks.App{}
	hub.On("Authenticate", contextMatcher, testToken).
		Return(testUsername, nil).Maybe()
	hub.On("Authenticate", contextMatcher, mock.AnythingOfType("string")).
		Return("", app.ErrUnauthorized).Maybe()
	return hub
}

func deviceURL(path, deviceID string) string {
	return strings.Replace(path, ":id", deviceID, 1)
}

func newRequest(method, url string, body interface{}) *http.Request {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req, err := http.NewRequest(method, "http://localhost"+url, bytes.NewReader(payload))
	if err != nil {
		panic(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) {
		t.FailNow()
	}
	return body
}

func TestManagementAuthorization(t *testing.T) {
	testCases := []struct {
		Name          string
		Authorization string

		HTTPStatus int
	}{
		{
			Name:          "ok, bearer token",
			Authorization: "Bearer " + testToken,
			HTTPStatus:    http.StatusOK,
		},
		{
			Name:          "ok, raw token",
			Authorization: testToken,
			HTTPStatus:    http.StatusOK,
		},
		{
			Name:       "ko, missing token",
			HTTPStatus: http.StatusUnauthorized,
		},
		{
			Name:          "ko, unknown token",
			Authorization: "Bearer deadbeef",
			HTTPStatus:    http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			hub.On("ListDevices", contextMatcher).
				Return([]model.DeviceSession{})

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodGet, APIURLDevices, nil)
			if tc.Authorization != "" {
				req.Header.Set(headerAuthorization, tc.Authorization)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)
			if tc.HTTPStatus == http.StatusUnauthorized {
				body := decodeBody(t, w)
				assert.Equal(t, errUnauthorized.Error(), body["error"])
				hub.AssertNotCalled(t, "ListDevices", contextMatcher)
			}
		})
	}
}

func TestManagementListDevices(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	hub := newAuthorizedApp()
	hub.On("ListDevices", contextMatcher).Return([]model.DeviceSession{{
		ID:       testDeviceID,
		Name:     "SmartC-d1",
		IP:       "10.0.0.2",
		Version:  "1.2.0",
		Status:   model.DeviceStatusOnline,
		LastSeen: now,
	}})

	router, _ := NewRouter(hub)
	req := newRequest(http.MethodGet, APIURLDevices, nil)
	req.Header.Set(headerAuthorization, "Bearer "+testToken)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Devices []model.DeviceSession `json:"devices"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	if assert.Len(t, body.Devices, 1) {
		assert.Equal(t, testDeviceID, body.Devices[0].ID)
		assert.Equal(t, model.DeviceStatusOnline, body.Devices[0].Status)
		assert.True(t, now.Equal(body.Devices[0].LastSeen))
	}
	hub.AssertExpectations(t)
}

func TestManagementGetDevice(t *testing.T) {
	testCases := []struct {
		Name     string
		URL      string
		DeviceID string

		GetDevice      *model.DeviceSession
		GetDeviceError error

		HTTPStatus int
		Body       map[string]interface{}
	}{
		{
			Name:     "ok",
			URL:      APIURLDevice,
			DeviceID: testDeviceID,

			GetDevice: &model.DeviceSession{
				ID:     testDeviceID,
				Name:   "Kitchen",
				Status: model.DeviceStatusOffline,
			},

			HTTPStatus: http.StatusOK,
			Body: map[string]interface{}{
				"id":     testDeviceID,
				"name":   "Kitchen",
				"status": "offline",
			},
		},
		{
			Name:     "ok, health",
			URL:      APIURLDeviceHealth,
			DeviceID: testDeviceID,

			GetDevice: &model.DeviceSession{
				ID:     testDeviceID,
				Status: model.DeviceStatusOnline,
				System: map[string]interface{}{"cpu": 12.5},
			},

			HTTPStatus: http.StatusOK,
			Body: map[string]interface{}{
				"status": "online",
				"system": map[string]interface{}{"cpu": 12.5},
			},
		},
		{
			Name:     "ko, not found",
			URL:      APIURLDevice,
			DeviceID: "unknown",

			GetDeviceError: app.ErrDeviceNotFound,

			HTTPStatus: http.StatusNotFound,
			Body: map[string]interface{}{
				"error": "Device not found",
			},
		},
		{
			Name:     "ko, health not found",
			URL:      APIURLDeviceHealth,
			DeviceID: "unknown",

			GetDeviceError: app.ErrDeviceNotFound,

			HTTPStatus: http.StatusNotFound,
			Body: map[string]interface{}{
				"error": "Device not found",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			hub.On("GetDevice", contextMatcher, tc.DeviceID).
				Return(tc.GetDevice, tc.GetDeviceError)

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodGet, deviceURL(tc.URL, tc.DeviceID), nil)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)

			body := decodeBody(t, w)
			for key, value := range tc.Body {
				assert.Equal(t, value, body[key], key)
			}
			hub.AssertExpectations(t)
		})
	}
}

func TestManagementSubmitCommand(t *testing.T) {
	testCases := []struct {
		Name string
		Body interface{}

		Command string
		Params  map[string]interface{}
		Result  *model.Command
		Error   error

		HTTPStatus int
		Response   map[string]interface{}
	}{
		{
			Name: "ok, type and data",
			Body: map[string]interface{}{
				"type": "reboot",
				"data": map[string]interface{}{"delay": 5},
			},

			Command: "reboot",
			Params:  map[string]interface{}{"delay": float64(5)},
			Result:  &model.Command{ID: 1},

			HTTPStatus: http.StatusOK,
			Response: map[string]interface{}{
				"success":   true,
				"commandId": float64(1),
			},
		},
		{
			Name: "ok, command and params",
			Body: map[string]interface{}{
				"command": "restart_app",
			},

			Command: "restart_app",
			Params:  map[string]interface{}{},
			Result:  &model.Command{ID: 7},

			HTTPStatus: http.StatusOK,
			Response: map[string]interface{}{
				"success":   true,
				"commandId": float64(7),
			},
		},
		{
			Name: "ko, device not connected",
			Body: map[string]interface{}{
				"type": "reboot",
			},

			Command: "reboot",
			Params:  map[string]interface{}{},
			Error:   app.ErrDeviceNotConnected,

			HTTPStatus: http.StatusNotFound,
			Response: map[string]interface{}{
				"error": "Device not connected",
			},
		},
		{
			Name: "ko, send failed",
			Body: map[string]interface{}{
				"type": "reboot",
			},

			Command: "reboot",
			Params:  map[string]interface{}{},
			Error:   errors.Wrap(app.ErrDeviceNotConnected, "broken pipe"),

			HTTPStatus: http.StatusNotFound,
			Response: map[string]interface{}{
				"error": "Device not connected",
			},
		},
		{
			Name: "ko, missing type",
			Body: map[string]interface{}{
				"data": map[string]interface{}{},
			},

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name: "ko, malformed body",
			Body: "reboot",

			HTTPStatus: http.StatusBadRequest,
		},
		{
			Name: "ko, internal error",
			Body: map[string]interface{}{
				"type": "reboot",
			},

			Command: "reboot",
			Params:  map[string]interface{}{},
			Error:   errors.New("boom"),

			HTTPStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			if tc.Command != "" {
				hub.On("SubmitCommand",
					contextMatcher,
					testDeviceID,
					tc.Command,
					tc.Params,
				).Return(tc.Result, tc.Error)
			}

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodPost,
				deviceURL(APIURLDeviceCommand, testDeviceID), tc.Body)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

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

func TestManagementSubmitSetting(t *testing.T) {
	testCases := []struct {
		Name string
		URL  string
		Body interface{}

		Command string
		Params  map[string]interface{}
	}{
		{
			Name: "audio",
			URL:  APIURLDeviceAudioSet,
			Body: map[string]interface{}{
				"input_device":  "hw:1",
				"output_device": "hw:0",
				"ignored":       true,
			},

			Command: "set_audio",
			Params: map[string]interface{}{
				"input_device":  "hw:1",
				"output_device": "hw:0",
			},
		},
		{
			Name: "video",
			URL:  APIURLDeviceVideoSet,
			Body: map[string]interface{}{"video_path": "/videos/bg.mp4"},

			Command: "set_video",
			Params:  map[string]interface{}{"video_path": "/videos/bg.mp4"},
		},
		{
			Name: "wifi connect",
			URL:  APIURLDeviceWifiConnect,
			Body: map[string]interface{}{"ssid": "office", "password": "secret"},

			Command: "wifi_connect",
			Params:  map[string]interface{}{"ssid": "office", "password": "secret"},
		},
		{
			Name: "wakeword",
			URL:  APIURLDeviceWakeword,
			Body: map[string]interface{}{"enabled": true, "threshold": 0.5},

			Command: "set_wakeword",
			Params:  map[string]interface{}{"enabled": true, "threshold": 0.5},
		},
		{
			Name: "system forwards the whole body",
			URL:  APIURLDeviceSystem,
			Body: map[string]interface{}{"language": "vi", "ota_url": "https://ota"},

			Command: "set_system",
			Params:  map[string]interface{}{"language": "vi", "ota_url": "https://ota"},
		},
		{
			Name: "mic test without body",
			URL:  APIURLDeviceTestMic,

			Command: "test_mic",
			Params:  map[string]interface{}{},
		},
		{
			Name: "speaker test default",
			URL:  APIURLDeviceTestSpeaker,
			Body: map[string]interface{}{},

			Command: "test_speaker",
			Params:  map[string]interface{}{"hdmi_audio": false},
		},
		{
			Name: "speaker test hdmi",
			URL:  APIURLDeviceTestSpeaker,
			Body: map[string]interface{}{"hdmi_audio": true},

			Command: "test_speaker",
			Params:  map[string]interface{}{"hdmi_audio": true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			hub.On("SubmitCommand",
				contextMatcher,
				testDeviceID,
				tc.Command,
				tc.Params,
			).Return(&model.Command{ID: 3}, nil)

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodPost, deviceURL(tc.URL, testDeviceID), tc.Body)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, float64(3), body["commandId"])
			hub.AssertExpectations(t)
		})
	}
}

func TestManagementSendRequest(t *testing.T) {
	testCases := []struct {
		Name   string
		Method string
		URL    string

		Type  model.MessageType
		Error error

		HTTPStatus int
	}{
		{
			Name:   "screenshot",
			Method: http.MethodPost,
			URL:    APIURLDeviceScreenshotRequest,

			Type:       model.MessageTypeCaptureScreenshot,
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "audio devices",
			Method: http.MethodPost,
			URL:    APIURLDeviceAudioDevices,

			Type:       model.MessageTypeGetAudioDevices,
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "videos",
			Method: http.MethodPost,
			URL:    APIURLDeviceVideos,

			Type:       model.MessageTypeGetVideos,
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "wifi scan",
			Method: http.MethodPost,
			URL:    APIURLDeviceWifiScan,

			Type:       model.MessageTypeWifiScan,
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "saved wifi",
			Method: http.MethodGet,
			URL:    APIURLDeviceWifiSaved,

			Type:       model.MessageTypeGetSavedWifi,
			HTTPStatus: http.StatusOK,
		},
		{
			Name:   "ko, not connected",
			Method: http.MethodPost,
			URL:    APIURLDeviceWifiScan,

			Type:       model.MessageTypeWifiScan,
			Error:      app.ErrDeviceNotConnected,
			HTTPStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			hub.On("SendToDevice",
				contextMatcher,
				testDeviceID,
				&model.OutboundMessage{Type: tc.Type},
			).Return(tc.Error)

			router, _ := NewRouter(hub)
			req := newRequest(tc.Method, deviceURL(tc.URL, testDeviceID), nil)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)
			hub.AssertExpectations(t)
		})
	}
}

func TestManagementConfig(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		hub := newAuthorizedApp()
		hub.On("GetDevice", contextMatcher, testDeviceID).
			Return(&model.DeviceSession{
				ID:     testDeviceID,
				Config: map[string]interface{}{"volume": float64(30)},
			}, nil)
		hub.On("SendToDevice", contextMatcher, testDeviceID,
			&model.OutboundMessage{Type: model.MessageTypeGetConfig},
		).Return(nil)

		router, _ := NewRouter(hub)
		req := newRequest(http.MethodGet, deviceURL(APIURLDeviceConfig, testDeviceID), nil)
		req.Header.Set(headerAuthorization, "Bearer "+testToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, map[string]interface{}{"volume": float64(30)}, body["config"])
		hub.AssertExpectations(t)
	})

	t.Run("get, not connected", func(t *testing.T) {
		hub := newAuthorizedApp()
		hub.On("GetDevice", contextMatcher, testDeviceID).
			Return(&model.DeviceSession{ID: testDeviceID}, nil)
		hub.On("SendToDevice", contextMatcher, testDeviceID,
			&model.OutboundMessage{Type: model.MessageTypeGetConfig},
		).Return(app.ErrDeviceNotConnected)

		router, _ := NewRouter(hub)
		req := newRequest(http.MethodGet, deviceURL(APIURLDeviceConfig, testDeviceID), nil)
		req.Header.Set(headerAuthorization, "Bearer "+testToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Device not connected", decodeBody(t, w)["error"])
	})

	t.Run("update", func(t *testing.T) {
		config := map[string]interface{}{"volume": float64(80)}
		hub := newAuthorizedApp()
		hub.On("SendToDevice", contextMatcher, testDeviceID,
			&model.OutboundMessage{
				Type:   model.MessageTypeUpdateConfig,
				Config: config,
			},
		).Return(nil)

		router, _ := NewRouter(hub)
		req := newRequest(http.MethodPost,
			deviceURL(APIURLDeviceConfig, testDeviceID),
			map[string]interface{}{"config": config})
		req.Header.Set(headerAuthorization, "Bearer "+testToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		hub.AssertExpectations(t)
	})

	t.Run("update, missing config", func(t *testing.T) {
		hub := newAuthorizedApp()

		router, _ := NewRouter(hub)
		req := newRequest(http.MethodPost,
			deviceURL(APIURLDeviceConfig, testDeviceID),
			map[string]interface{}{})
		req.Header.Set(headerAuthorization, "Bearer "+testToken)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		hub.AssertNotCalled(t, "SendToDevice")
	})
}

func TestManagementGetCommand(t *testing.T) {
	completedTs := time.Now().UTC().Truncate(time.Second)
	testCases := []struct {
		Name      string
		CommandID string

		ID      int64
		Command *model.Command
		Error   error

		HTTPStatus int
		Response   map[string]interface{}
	}{
		{
			Name:      "ok",
			CommandID: "1",

			ID: 1,
			Command: &model.Command{
				ID:          1,
				DeviceID:    testDeviceID,
				Command:     "reboot",
				Status:      model.CommandStatusCompleted,
				Result:      map[string]interface{}{"ok": true},
				CompletedTs: &completedTs,
			},

			HTTPStatus: http.StatusOK,
			Response: map[string]interface{}{
				"id":     float64(1),
				"status": "completed",
				"result": map[string]interface{}{"ok": true},
			},
		},
		{
			Name:      "ko, not found",
			CommandID: "2",

			ID:    2,
			Error: app.ErrCommandNotFound,

			HTTPStatus: http.StatusNotFound,
			Response: map[string]interface{}{
				"error": "Command not found",
			},
		},
		{
			Name:      "ko, invalid id",
			CommandID: "abc",

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			if tc.ID != 0 {
				hub.On("GetCommand", contextMatcher, tc.ID).
					Return(tc.Command, tc.Error)
			}

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodGet,
				deviceURL(APIURLCommand, tc.CommandID), nil)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

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

func TestManagementHistory(t *testing.T) {
	testCases := []struct {
		Name  string
		URL   string
		Query string

		Method string
		Limit  int
		Return interface{}
		Error  error

		HTTPStatus int
		Key        string
	}{
		{
			Name:  "commands, default limit",
			URL:   APIURLDeviceCommands,
			Query: "",

			Method: "GetDeviceCommands",
			Limit:  0,
			Return: []model.Command{{ID: 2}, {ID: 1}},

			HTTPStatus: http.StatusOK,
			Key:        "commands",
		},
		{
			Name:  "logs, explicit limit",
			URL:   APIURLDeviceLogs,
			Query: "?limit=5",

			Method: "GetDeviceLogs",
			Limit:  5,
			Return: []model.DeviceLog{{Type: model.DeviceLogRegister}},

			HTTPStatus: http.StatusOK,
			Key:        "logs",
		},
		{
			Name:  "logs, unknown device",
			URL:   APIURLDeviceLogs,
			Query: "",

			Method: "GetDeviceLogs",
			Limit:  0,
			Return: []model.DeviceLog(nil),
			Error:  app.ErrDeviceNotFound,

			HTTPStatus: http.StatusNotFound,
		},
		{
			Name:  "commands, invalid limit",
			URL:   APIURLDeviceCommands,
			Query: "?limit=-1",

			HTTPStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			if tc.Method != "" {
				hub.On(tc.Method, contextMatcher, testDeviceID, tc.Limit).
					Return(tc.Return, tc.Error)
			}

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodGet,
				deviceURL(tc.URL, testDeviceID)+tc.Query, nil)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.HTTPStatus, w.Code)
			if tc.Key != "" {
				body := decodeBody(t, w)
				assert.Contains(t, body, tc.Key)
			}
			hub.AssertExpectations(t)
		})
	}
}

func TestManagementScreenshot(t *testing.T) {
	timestamp := time.Now().UTC().Truncate(time.Second)
	testCases := []struct {
		Name string

		Screenshot *model.Screenshot
		Error      error

		HTTPStatus int
		Response   map[string]interface{}
	}{
		{
			Name: "ok",
			Screenshot: &model.Screenshot{
				Image:     "aW1hZ2U=",
				Timestamp: timestamp,
			},
			HTTPStatus: http.StatusOK,
			Response: map[string]interface{}{
				"image": "aW1hZ2U=",
			},
		},
		{
			Name:       "ko, no screenshot",
			Error:      app.ErrScreenshotNotFound,
			HTTPStatus: http.StatusNotFound,
			Response: map[string]interface{}{
				"error": "No screenshot available",
			},
		},
		{
			Name:       "ko, unknown device",
			Error:      app.ErrDeviceNotFound,
			HTTPStatus: http.StatusNotFound,
			Response: map[string]interface{}{
				"error": "Device not found",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hub := newAuthorizedApp()
			hub.On("GetScreenshot", contextMatcher, testDeviceID).
				Return(tc.Screenshot, tc.Error)

			router, _ := NewRouter(hub)
			req := newRequest(http.MethodGet,
				deviceURL(APIURLDeviceScreenshot, testDeviceID), nil)
			req.Header.Set(headerAuthorization, "Bearer "+testToken)

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

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
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mendersoftware/go-lib-micro/accesslog"
	"github.com/mendersoftware/go-lib-micro/requestid"

	"github.com/smartc-ai/devicehub/app"
)

// API URL used by the HTTP router
const (
	APIURLHealth = "/health"
	APIURLAPI    = "/api"

	APIURLAlive  = APIURLAPI + "/health/alive"
	APIURLReady  = APIURLAPI + "/health/ready"
	APIURLLogin  = APIURLAPI + "/login"
	APIURLLogout = APIURLAPI + "/logout"

	APIURLDevices                 = APIURLAPI + "/devices"
	APIURLDevice                  = APIURLDevices + "/:id"
	APIURLDeviceHealth            = APIURLDevice + "/health"
	APIURLDeviceCommand           = APIURLDevice + "/command"
	APIURLDeviceCommands          = APIURLDevice + "/commands"
	APIURLDeviceLogs              = APIURLDevice + "/logs"
	APIURLDeviceScreenshot        = APIURLDevice + "/screenshot"
	APIURLDeviceScreenshotRequest = APIURLDevice + "/screenshot/request"
	APIURLDeviceConfig            = APIURLDevice + "/config"
	APIURLDeviceAudioDevices      = APIURLDevice + "/audio/devices"
	APIURLDeviceAudioSet          = APIURLDevice + "/audio/set"
	APIURLDeviceVideos            = APIURLDevice + "/videos"
	APIURLDeviceVideoSet          = APIURLDevice + "/video/set"
	APIURLDeviceWifiScan          = APIURLDevice + "/wifi/scan"
	APIURLDeviceWifiConnect       = APIURLDevice + "/wifi/connect"
	APIURLDeviceWifiSaved         = APIURLDevice + "/wifi/saved"
	APIURLDeviceWakeword          = APIURLDevice + "/wakeword"
	APIURLDeviceSystem            = APIURLDevice + "/system"
	APIURLDeviceTestMic           = APIURLDevice + "/test/mic"
	APIURLDeviceTestSpeaker       = APIURLDevice + "/test/speaker"

	APIURLCommand = APIURLAPI + "/commands/:id"

	APIURLDeviceWebsocket = "/ws/device"
)

// Config holds the optional settings of the router.
type Config struct {
	// DeviceSecret, when set, must be presented by devices opening the
	// websocket.
	DeviceSecret string
	// AllowedOrigins restricts CORS to the listed origins; all origins
	// are allowed when empty.
	AllowedOrigins []string
}

// NewRouter returns the gin router
func NewRouter(
	hub app.App,
	config ...*Config,
) (*gin.Engine, error) {
	conf := &Config{}
	for _, cfgIn := range config {
		if cfgIn == nil {
			continue
		}
		if cfgIn.DeviceSecret != "" {
			conf.DeviceSecret = cfgIn.DeviceSecret
		}
		if len(cfgIn.AllowedOrigins) > 0 {
			conf.AllowedOrigins = cfgIn.AllowedOrigins
		}
	}

	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()

	router := gin.New()
	router.Use(accesslog.Middleware())
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())

	corsConfig := cors.Config{
		AllowCredentials: true,
		AllowHeaders: []string{
			"Accept",
			"Allow",
			"Content-Type",
			"Origin",
			"Authorization",
			"Accept-Encoding",
			"Access-Control-Request-Headers",
			"Header-Access-Control-Request",
			HdrKeyDeviceSecret,
		},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowWebSockets: true,
		ExposeHeaders: []string{
			"Location",
			"Link",
		},
		MaxAge: time.Hour * 12,
	}
	if len(conf.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = conf.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	status := NewStatusController(hub)
	router.GET(APIURLHealth, status.Health)
	router.GET(APIURLAlive, status.Alive)
	router.GET(APIURLReady, status.Ready)

	auth := NewAuthController(hub)
	router.POST(APIURLLogin, auth.Login)

	device := NewDeviceController(hub, conf.DeviceSecret)
	router.GET(APIURLDeviceWebsocket, device.Connect)

	operator := router.Group("/", AuthMiddleware(hub))
	operator.POST(APIURLLogout, auth.Logout)

	management := NewManagementController(hub)
	operator.GET(APIURLDevices, management.ListDevices)
	operator.GET(APIURLDevice, management.GetDevice)
	operator.GET(APIURLDeviceHealth, management.GetDeviceHealth)
	operator.POST(APIURLDeviceCommand, management.SubmitCommand)
	operator.GET(APIURLDeviceCommands, management.GetDeviceCommands)
	operator.GET(APIURLDeviceLogs, management.GetDeviceLogs)
	operator.GET(APIURLDeviceScreenshot, management.GetScreenshot)
	operator.POST(APIURLDeviceScreenshotRequest,
		management.SendRequest(RequestCaptureScreenshot))
	operator.GET(APIURLDeviceConfig, management.GetConfig)
	operator.POST(APIURLDeviceConfig, management.UpdateConfig)
	operator.GET(APIURLCommand, management.GetCommand)

	operator.POST(APIURLDeviceAudioDevices,
		management.SendRequest(RequestAudioDevices))
	operator.POST(APIURLDeviceVideos,
		management.SendRequest(RequestVideos))
	operator.POST(APIURLDeviceWifiScan,
		management.SendRequest(RequestWifiScan))
	operator.GET(APIURLDeviceWifiSaved,
		management.SendRequest(RequestSavedWifi))

	operator.POST(APIURLDeviceAudioSet, management.SubmitSetting(SettingAudio))
	operator.POST(APIURLDeviceVideoSet, management.SubmitSetting(SettingVideo))
	operator.POST(APIURLDeviceWifiConnect, management.SubmitSetting(SettingWifiConnect))
	operator.POST(APIURLDeviceWakeword, management.SubmitSetting(SettingWakeword))
	operator.POST(APIURLDeviceSystem, management.SubmitSetting(SettingSystem))
	operator.POST(APIURLDeviceTestMic, management.SubmitSetting(SettingTestMic))
	operator.POST(APIURLDeviceTestSpeaker, management.SubmitSetting(SettingTestSpeaker))

	return router, nil
}

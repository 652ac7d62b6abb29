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

package model

import "time"

// DeviceLogType classifies device log entries.
type DeviceLogType string

const (
	DeviceLogRegister      DeviceLogType = "register"
	DeviceLogDisconnect    DeviceLogType = "disconnect"
	DeviceLogOffline       DeviceLogType = "offline"
	DeviceLogCommand       DeviceLogType = "command"
	DeviceLogCommandResult DeviceLogType = "command_result"
	DeviceLogConfigUpdated DeviceLogType = "config_updated"
)

// DeviceLog is an entry of a device's activity history.
type DeviceLog struct {
	DeviceID  string        `json:"device_id" bson:"device_id"`
	Type      DeviceLogType `json:"type" bson:"type"`
	Message   string        `json:"message" bson:"message"`
	Data      interface{}   `json:"data,omitempty" bson:"data,omitempty"`
	CreatedTs time.Time     `json:"created_at" bson:"created_ts"`
}

// Screenshot is the latest image captured by a device.
type Screenshot struct {
	Image     string    `json:"image"`
	Timestamp time.Time `json:"timestamp"`
}

// HubStats summarizes the registry for the server health endpoint.
type HubStats struct {
	DevicesConnected  int `json:"devices_connected"`
	DevicesRegistered int `json:"devices_registered"`
}

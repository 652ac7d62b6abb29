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

import (
	"strconv"
	"strings"
	"time"
)

// EventType names the events published for external subscribers.
type EventType string

const (
	EventDeviceOnline     EventType = "device_online"
	EventDeviceOffline    EventType = "device_offline"
	EventCommandSubmitted EventType = "command_submitted"
	EventCommandCompleted EventType = "command_completed"
	EventCommandFailed    EventType = "command_failed"
)

const subjectPrefix = "smartc"

// Event is published on the message bus whenever a device changes
// reachability or a command changes state.
type Event struct {
	Type      EventType   `msgpack:"type" json:"type"`
	DeviceID  string      `msgpack:"device_id" json:"device_id"`
	CommandID int64       `msgpack:"command_id,omitempty" json:"command_id,omitempty"`
	Command   string      `msgpack:"command,omitempty" json:"command,omitempty"`
	Result    interface{} `msgpack:"result,omitempty" json:"result,omitempty"`
	Timestamp time.Time   `msgpack:"ts" json:"ts"`
}

// Subject returns the subject the event is published on.
func (e Event) Subject() string {
	switch e.Type {
	case EventDeviceOnline, EventDeviceOffline:
		return GetDeviceSubject(e.DeviceID)
	default:
		return GetCommandSubject(e.DeviceID, e.CommandID)
	}
}

// GetDeviceSubject returns the status subject of a device.
func GetDeviceSubject(deviceID string) string {
	return strings.Join([]string{
		subjectPrefix,
		"devices",
		deviceID,
		"status",
	}, ".")
}

// GetCommandSubject returns the subject for events about one command.
func GetCommandSubject(deviceID string, commandID int64) string {
	return strings.Join([]string{
		subjectPrefix,
		"commands",
		deviceID,
		strconv.FormatInt(commandID, 10),
	}, ".")
}

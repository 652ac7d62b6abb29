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
	"encoding/json"

	"github.com/pkg/errors"
)

// MessageType discriminates the JSON frames exchanged with devices.
type MessageType string

// Inbound message types (device -> hub).
const (
	MessageTypeRegister      MessageType = "register"
	MessageTypeHeartbeat     MessageType = "heartbeat"
	MessageTypeScreenshot    MessageType = "screenshot"
	MessageTypeCommandResult MessageType = "command_result"
	MessageTypeConfigUpdated MessageType = "config_updated"
)

// Outbound message types (hub -> device).
const (
	MessageTypeRegistered        MessageType = "registered"
	MessageTypeCommand           MessageType = "command"
	MessageTypeCaptureScreenshot MessageType = "capture_screenshot"
	MessageTypeUpdateConfig      MessageType = "update_config"
	MessageTypeGetConfig         MessageType = "get_config"
	MessageTypeGetAudioDevices   MessageType = "get_audio_devices"
	MessageTypeGetVideos         MessageType = "get_videos"
	MessageTypeWifiScan          MessageType = "wifi_scan"
	MessageTypeGetSavedWifi      MessageType = "get_saved_wifi"
)

const RegisteredMessage = "Device registered successfully"

var (
	ErrMalformedMessage = errors.New("malformed message")
)

// InboundMessage is the union of all frames a device may send; which fields
// are meaningful depends on Type.
type InboundMessage struct {
	Type MessageType `json:"type"`

	// register / heartbeat
	DeviceID string                 `json:"device_id,omitempty"`
	Name     string                 `json:"name,omitempty"`
	IP       string                 `json:"ip,omitempty"`
	Version  string                 `json:"version,omitempty"`
	Config   map[string]interface{} `json:"config,omitempty"`
	System   map[string]interface{} `json:"system,omitempty"`

	// screenshot
	Image string `json:"image,omitempty"`

	// command_result
	CommandID *int64      `json:"command_id,omitempty"`
	Command   string      `json:"command,omitempty"`
	Result    interface{} `json:"result,omitempty"`

	// config_updated
	Status string `json:"status,omitempty"`
}

// DecodeInboundMessage parses a device frame. Any failure is reported as
// ErrMalformedMessage so callers can drop the frame and keep the
// connection.
func DecodeInboundMessage(data []byte) (*InboundMessage, error) {
	msg := &InboundMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, errors.Wrap(ErrMalformedMessage, err.Error())
	}
	if msg.Type == "" {
		return nil, errors.Wrap(ErrMalformedMessage, "missing message type")
	}
	return msg, nil
}

// Metadata extracts the descriptive device fields carried by the message.
func (m *InboundMessage) Metadata() DeviceMetadata {
	return DeviceMetadata{
		Name:    m.Name,
		IP:      m.IP,
		Version: m.Version,
		Config:  m.Config,
		System:  m.System,
	}
}

// OutboundMessage is a frame sent to a device.
type OutboundMessage struct {
	Type MessageType `json:"type"`

	// registered
	DeviceID string `json:"device_id,omitempty"`
	Message  string `json:"message,omitempty"`

	// command
	CommandID int64                  `json:"command_id,omitempty"`
	Command   string                 `json:"command,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`

	// update_config
	Config map[string]interface{} `json:"config,omitempty"`
}

// MarshalJSON encodes the frame. command frames always carry params and
// update_config frames always carry config, even when empty.
func (m OutboundMessage) MarshalJSON() ([]byte, error) {
	type frame OutboundMessage
	switch m.Type {
	case MessageTypeCommand:
		return json.Marshal(struct {
			Type      MessageType            `json:"type"`
			CommandID int64                  `json:"command_id"`
			Command   string                 `json:"command"`
			Params    map[string]interface{} `json:"params"`
		}{
			Type:      m.Type,
			CommandID: m.CommandID,
			Command:   m.Command,
			Params:    orEmpty(m.Params),
		})
	case MessageTypeUpdateConfig:
		return json.Marshal(struct {
			Type   MessageType            `json:"type"`
			Config map[string]interface{} `json:"config"`
		}{
			Type:   m.Type,
			Config: orEmpty(m.Config),
		})
	}
	return json.Marshal(frame(m))
}

func orEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

// NewRegisteredMessage builds the reply to a register frame.
func NewRegisteredMessage(deviceID string) *OutboundMessage {
	return &OutboundMessage{
		Type:     MessageTypeRegistered,
		DeviceID: deviceID,
		Message:  RegisteredMessage,
	}
}

// NewCommandMessage builds the frame carrying a command to a device.
func NewCommandMessage(cmd *Command) *OutboundMessage {
	return &OutboundMessage{
		Type:      MessageTypeCommand,
		CommandID: cmd.ID,
		Command:   cmd.Command,
		Params:    orEmpty(cmd.Params),
	}
}

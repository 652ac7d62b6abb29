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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInboundMessage(t *testing.T) {
	commandID := int64(7)
	testCases := []struct {
		Name string
		Data string

		Message *InboundMessage
		Error   bool
	}{
		{
			Name: "register",
			Data: `{"type":"register","device_id":"D1","name":"Lobby",` +
				`"system":{"cpu":12.5}}`,

			Message: &InboundMessage{
				Type:     MessageTypeRegister,
				DeviceID: "D1",
				Name:     "Lobby",
				System:   map[string]interface{}{"cpu": 12.5},
			},
		},
		{
			Name: "command result",
			Data: `{"type":"command_result","command_id":7,"result":{"ok":true}}`,

			Message: &InboundMessage{
				Type:      MessageTypeCommandResult,
				CommandID: &commandID,
				Result:    map[string]interface{}{"ok": true},
			},
		},
		{
			Name: "unknown type is decoded",
			Data: `{"type":"telemetry"}`,

			Message: &InboundMessage{Type: "telemetry"},
		},
		{
			Name:  "not json",
			Data:  `hello`,
			Error: true,
		},
		{
			Name:  "missing type",
			Data:  `{"device_id":"D1"}`,
			Error: true,
		},
		{
			Name:  "wrong field type",
			Data:  `{"type":"command_result","command_id":"seven"}`,
			Error: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			msg, err := DecodeInboundMessage([]byte(tc.Data))
			if tc.Error {
				assert.Nil(t, msg)
				assert.Equal(t, ErrMalformedMessage, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Message, msg)
		})
	}
}

func TestInboundMessageMetadata(t *testing.T) {
	msg := &InboundMessage{
		Type:    MessageTypeHeartbeat,
		Name:    "Lobby",
		IP:      "10.0.0.1",
		Version: "2.1.0",
		Config:  map[string]interface{}{"volume": 10},
	}
	assert.Equal(t, DeviceMetadata{
		Name:    "Lobby",
		IP:      "10.0.0.1",
		Version: "2.1.0",
		Config:  map[string]interface{}{"volume": 10},
	}, msg.Metadata())
}

func TestOutboundMessages(t *testing.T) {
	assert.Equal(t, &OutboundMessage{
		Type:     MessageTypeRegistered,
		DeviceID: "D1",
		Message:  "Device registered successfully",
	}, NewRegisteredMessage("D1"))

	msg := NewCommandMessage(&Command{ID: 3, Command: "reboot"})
	assert.Equal(t, &OutboundMessage{
		Type:      MessageTypeCommand,
		CommandID: 3,
		Command:   "reboot",
		Params:    map[string]interface{}{},
	}, msg)
}

func TestOutboundMessageJSON(t *testing.T) {
	testCases := []struct {
		Name    string
		Message *OutboundMessage

		JSON string
	}{
		{
			Name:    "command without params",
			Message: NewCommandMessage(&Command{ID: 1, Command: "reboot"}),

			JSON: `{"type":"command","command_id":1,"command":"reboot","params":{}}`,
		},
		{
			Name: "command with nil params",
			Message: &OutboundMessage{
				Type:      MessageTypeCommand,
				CommandID: 2,
				Command:   "reboot",
			},

			JSON: `{"type":"command","command_id":2,"command":"reboot","params":{}}`,
		},
		{
			Name: "command with params",
			Message: NewCommandMessage(&Command{
				ID:      3,
				Command: "set_volume",
				Params:  map[string]interface{}{"level": 30},
			}),

			JSON: `{"type":"command","command_id":3,"command":"set_volume",` +
				`"params":{"level":30}}`,
		},
		{
			Name: "empty config update",
			Message: &OutboundMessage{
				Type:   MessageTypeUpdateConfig,
				Config: map[string]interface{}{},
			},

			JSON: `{"type":"update_config","config":{}}`,
		},
		{
			Name:    "registered",
			Message: NewRegisteredMessage("D1"),

			JSON: `{"type":"registered","device_id":"D1",` +
				`"message":"Device registered successfully"}`,
		},
		{
			Name:    "plain request",
			Message: &OutboundMessage{Type: MessageTypeCaptureScreenshot},

			JSON: `{"type":"capture_screenshot"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			b, err := json.Marshal(tc.Message)
			require.NoError(t, err)
			assert.JSONEq(t, tc.JSON, string(b))
		})
	}
}

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
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CommandStatus is the lifecycle state of an operator issued command.
type CommandStatus string

const (
	CommandStatusPending   CommandStatus = "pending"
	CommandStatusCompleted CommandStatus = "completed"
	CommandStatusFailed    CommandStatus = "failed"
)

const maxCommandNameLength = 64

// Command is a command issued to a device and, once the device answers,
// its result.
type Command struct {
	ID          int64                  `json:"id" bson:"_id"`
	DeviceID    string                 `json:"device_id" bson:"device_id"`
	Command     string                 `json:"command" bson:"command"`
	Params      map[string]interface{} `json:"params,omitempty" bson:"params,omitempty"`
	Status      CommandStatus          `json:"status" bson:"status"`
	Result      interface{}            `json:"result,omitempty" bson:"result,omitempty"`
	Error       string                 `json:"error,omitempty" bson:"error,omitempty"`
	CreatedTs   time.Time              `json:"created_at" bson:"created_ts"`
	CompletedTs *time.Time             `json:"completed_at,omitempty" bson:"completed_ts,omitempty"`
}

// Terminal reports whether the command has left the pending state.
func (c Command) Terminal() bool {
	return c.Status == CommandStatusCompleted || c.Status == CommandStatusFailed
}

// CommandRequest is the body of a command submission. The dashboard sends
// {type, data}; older clients send {command, params}.
type CommandRequest struct {
	Type    string                 `json:"type"`
	Data    map[string]interface{} `json:"data"`
	Command string                 `json:"command"`
	Params  map[string]interface{} `json:"params"`
}

// Name returns the command name, preferring Type.
func (r CommandRequest) Name() string {
	if r.Type != "" {
		return r.Type
	}
	return r.Command
}

// Arguments returns the command parameters, never nil.
func (r CommandRequest) Arguments() map[string]interface{} {
	args := r.Data
	if args == nil {
		args = r.Params
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

// Validate validates the request
func (r CommandRequest) Validate() error {
	name := r.Name()
	return validation.Errors{
		"type": validation.Validate(name,
			validation.Required,
			validation.Length(1, maxCommandNameLength),
		),
	}.Filter()
}

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

package store

import (
	"context"
	"errors"
	"time"

	"github.com/smartc-ai/devicehub/model"
)

// DataStore is the durable record of devices, their logs and the commands
// issued to them. The hub treats every write as best-effort.
type DataStore interface {
	Ping(ctx context.Context) error
	UpsertDevice(ctx context.Context, device *model.DeviceSession) error
	SetDeviceStatus(ctx context.Context, deviceID string, status model.DeviceStatus) error
	ListDevices(ctx context.Context) ([]model.DeviceSession, error)
	InsertCommand(ctx context.Context, cmd *model.Command) error
	UpdateCommand(ctx context.Context, cmd *model.Command) error
	GetCommand(ctx context.Context, commandID int64) (*model.Command, error)
	GetDeviceCommands(ctx context.Context, deviceID string, limit int) ([]model.Command, error)
	LastCommandID(ctx context.Context) (int64, error)
	InsertLog(ctx context.Context, entry *model.DeviceLog) error
	GetDeviceLogs(ctx context.Context, deviceID string, limit int) ([]model.DeviceLog, error)
	DeleteLogsBefore(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

var (
	ErrCommandExists = errors.New("store: command already exists")
)

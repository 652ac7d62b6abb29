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

package app

import "time"

var (
	// MessageSizeLimit bounds a single device frame. Screenshots arrive
	// base64 encoded in one frame, so this is sized for a full-screen capture.
	MessageSizeLimit int64 = 10 * 1024 * 1024

	// DeviceLogsDefaultLimit and DeviceCommandsDefaultLimit bound history
	// listings when the caller does not ask for a size.
	DeviceLogsDefaultLimit     = 50
	DeviceCommandsDefaultLimit = 20
	HistoryMaxLimit            = 500

	// PersistenceTimeout bounds each best-effort write to the data store.
	PersistenceTimeout = 5 * time.Second
)

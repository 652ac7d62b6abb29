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

// DeviceStatus is the reachability state of a device.
type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
)

const (
	// DeviceNamePrefix prefixes generated device names.
	DeviceNamePrefix = "SmartC-"
	// DeviceFieldUnknown is the placeholder for unreported fields.
	DeviceFieldUnknown = "Unknown"

	maxDeviceIDLength = 128
)

// DeviceSession is the hub's view of one device: its identity, last-known
// descriptive fields and current reachability.
type DeviceSession struct {
	ID        string                 `json:"id" bson:"_id"`
	Name      string                 `json:"name" bson:"name"`
	IP        string                 `json:"ip" bson:"ip"`
	Version   string                 `json:"version" bson:"version"`
	Status    DeviceStatus           `json:"status" bson:"status"`
	LastSeen  time.Time              `json:"lastSeen" bson:"last_seen"`
	Config    map[string]interface{} `json:"config,omitempty" bson:"config,omitempty"`
	System    map[string]interface{} `json:"system" bson:"system,omitempty"`
	CreatedTs time.Time              `json:"created_ts,omitempty" bson:"created_ts,omitempty"`
	UpdatedTs time.Time              `json:"updated_ts,omitempty" bson:"updated_ts,omitempty"`
}

// Online reports whether the session is currently reachable.
func (d DeviceSession) Online() bool {
	return d.Status == DeviceStatusOnline
}

// Clone returns a copy of the session which shares no maps with d.
func (d DeviceSession) Clone() DeviceSession {
	d.Config = cloneMap(d.Config)
	d.System = cloneMap(d.System)
	return d
}

// DeviceHealth is the reduced view served by the device health endpoint.
type DeviceHealth struct {
	Status   DeviceStatus           `json:"status"`
	LastSeen time.Time              `json:"lastSeen"`
	System   map[string]interface{} `json:"system"`
}

// Health extracts the health view of the session.
func (d DeviceSession) Health() DeviceHealth {
	return DeviceHealth{
		Status:   d.Status,
		LastSeen: d.LastSeen,
		System:   cloneMap(d.System),
	}
}

// DeviceMetadata holds the descriptive fields a device reports. Empty
// strings and nil maps mean "not reported".
type DeviceMetadata struct {
	Name    string
	IP      string
	Version string
	Config  map[string]interface{}
	System  map[string]interface{}
}

// ApplyTo overwrites the fields of d that are reported in m.
func (m DeviceMetadata) ApplyTo(d *DeviceSession) {
	if m.Name != "" {
		d.Name = m.Name
	}
	if m.IP != "" {
		d.IP = m.IP
	}
	if m.Version != "" {
		d.Version = m.Version
	}
	if m.Config != nil {
		d.Config = cloneMap(m.Config)
	}
	if m.System != nil {
		d.System = cloneMap(m.System)
	}
}

// DefaultDeviceName returns the name given to devices which do not
// report one.
func DefaultDeviceName(deviceID string) string {
	short := deviceID
	if len(short) > 8 {
		short = short[:8]
	}
	return DeviceNamePrefix + short
}

// ValidateDeviceID checks a caller supplied device id.
func ValidateDeviceID(deviceID string) error {
	return validation.Validate(deviceID,
		validation.Required,
		validation.Length(1, maxDeviceIDLength),
	)
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

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

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartc-ai/devicehub/model"
	"github.com/smartc-ai/devicehub/utils"
)

// Handle is the live transport used to push messages to one device.
// Implementations must serialize concurrent Send calls.
type Handle interface {
	Send(msg *model.OutboundMessage) error
	Close() error
}

type registryEntry struct {
	session model.DeviceSession
	handle  Handle
}

// Registry maps device ids to their session and live handle. It is the
// single source of truth for device reachability.
//
// An entry is online if and only if it holds a handle; every operation
// updates both under the same lock. Handles are never written to or closed
// while the lock is held.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	clock   utils.Clock
}

// NewRegistry returns an empty registry.
func NewRegistry(clock utils.Clock) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		clock:   utils.ClockOrDefault(clock),
	}
}

// Register attaches h to deviceID, generating an id if deviceID is empty,
// and returns the effective id. A handle previously registered for the same
// id is closed.
func (r *Registry) Register(
	deviceID string,
	meta model.DeviceMetadata,
	h Handle,
) string {
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	now := r.clock.Now()

	r.mu.Lock()
	entry, ok := r.entries[deviceID]
	if !ok {
		entry = &registryEntry{session: model.DeviceSession{
			ID:        deviceID,
			CreatedTs: now,
		}}
		r.entries[deviceID] = entry
	}
	superseded := entry.handle
	entry.handle = h
	sess := &entry.session
	sess.Name = model.DefaultDeviceName(deviceID)
	sess.IP = model.DeviceFieldUnknown
	sess.Version = model.DeviceFieldUnknown
	sess.Config = map[string]interface{}{}
	sess.System = map[string]interface{}{}
	meta.ApplyTo(sess)
	sess.Status = model.DeviceStatusOnline
	sess.LastSeen = now
	sess.UpdatedTs = now
	r.mu.Unlock()

	if superseded != nil && superseded != h {
		_ = superseded.Close()
	}
	return deviceID
}

// Touch records activity from deviceID and overwrites the reported
// metadata. It returns false if the id is unknown.
func (r *Registry) Touch(deviceID string, meta model.DeviceMetadata) bool {
	now := r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[deviceID]
	if !ok {
		return false
	}
	meta.ApplyTo(&entry.session)
	entry.session.LastSeen = now
	entry.session.UpdatedTs = now
	return true
}

// LookupHandle returns the live handle of deviceID, if connected.
func (r *Registry) LookupHandle(deviceID string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[deviceID]
	if !ok || entry.handle == nil {
		return nil, false
	}
	return entry.handle, true
}

// Disconnect marks deviceID offline, provided h is still the handle
// registered for it. It returns true if the entry was changed.
func (r *Registry) Disconnect(deviceID string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[deviceID]
	if !ok || entry.handle == nil || entry.handle != h {
		return false
	}
	entry.handle = nil
	entry.session.Status = model.DeviceStatusOffline
	entry.session.UpdatedTs = r.clock.Now()
	return true
}

// Get returns a copy of the session of deviceID.
func (r *Registry) Get(deviceID string) (model.DeviceSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[deviceID]
	if !ok {
		return model.DeviceSession{}, false
	}
	return entry.session.Clone(), true
}

// Snapshot returns copies of all sessions, most recently seen first.
func (r *Registry) Snapshot() []model.DeviceSession {
	r.mu.RLock()
	sessions := make([]model.DeviceSession, 0, len(r.entries))
	for _, entry := range r.entries {
		sessions = append(sessions, entry.session.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].LastSeen.Equal(sessions[j].LastSeen) {
			return sessions[i].LastSeen.After(sessions[j].LastSeen)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

// Counts returns the number of connected and known devices.
func (r *Registry) Counts() (connected, registered int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.handle != nil {
			connected++
		}
	}
	return connected, len(r.entries)
}

// Restore adds previously persisted sessions as offline entries. Ids
// already present in the registry are left untouched.
func (r *Registry) Restore(sessions []model.DeviceSession) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, sess := range sessions {
		if sess.ID == "" {
			continue
		}
		if _, ok := r.entries[sess.ID]; ok {
			continue
		}
		sess = sess.Clone()
		sess.Status = model.DeviceStatusOffline
		r.entries[sess.ID] = &registryEntry{session: sess}
		n++
	}
	return n
}

// SweepStale demotes to offline every online session that has no handle or
// has not been seen since now-threshold. Handles of demoted sessions are
// detached and closed. It returns the demoted sessions.
func (r *Registry) SweepStale(
	now time.Time,
	threshold time.Duration,
) []model.DeviceSession {
	var (
		demoted []model.DeviceSession
		closing []Handle
	)
	deadline := now.Add(-threshold)

	r.mu.Lock()
	for _, entry := range r.entries {
		sess := &entry.session
		orphaned := sess.Status == model.DeviceStatusOnline && entry.handle == nil
		stale := entry.handle != nil && sess.LastSeen.Before(deadline)
		if !orphaned && !stale {
			continue
		}
		if entry.handle != nil {
			closing = append(closing, entry.handle)
			entry.handle = nil
		}
		sess.Status = model.DeviceStatusOffline
		sess.UpdatedTs = now
		demoted = append(demoted, sess.Clone())
	}
	r.mu.Unlock()

	for _, h := range closing {
		_ = h.Close()
	}
	return demoted
}

// CloseAll detaches and closes every live handle.
func (r *Registry) CloseAll() {
	var closing []Handle
	r.mu.Lock()
	now := r.clock.Now()
	for _, entry := range r.entries {
		if entry.handle == nil {
			continue
		}
		closing = append(closing, entry.handle)
		entry.handle = nil
		entry.session.Status = model.DeviceStatusOffline
		entry.session.UpdatedTs = now
	}
	r.mu.Unlock()

	for _, h := range closing {
		_ = h.Close()
	}
}

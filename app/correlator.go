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
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/model"
	"github.com/smartc-ai/devicehub/store"
	"github.com/smartc-ai/devicehub/utils"
)

var (
	ErrCommandNotFound = errors.New("command not found")
	ErrCommandResolved = errors.New("command already resolved")
)

// CommandTimeoutError is the failure reason stored on expired commands.
const CommandTimeoutError = "timeout"

// FailedFunc is notified of commands which failed without a result.
type FailedFunc func(ctx context.Context, cmd model.Command)

// HandleLookup resolves the live handle of a device.
type HandleLookup interface {
	LookupHandle(deviceID string) (Handle, bool)
}

// Correlator issues commands to connected devices and matches the
// asynchronous results back to them by command id.
//
// The in-memory table holds every command issued by this process until it
// is pruned; the data store keeps the durable copy on a best-effort basis.
type Correlator struct {
	mu       sync.Mutex
	lastID   int64
	commands map[int64]*model.Command

	handles  HandleLookup
	store    store.DataStore
	clock    utils.Clock
	onFailed FailedFunc
}

// NewCorrelator returns a correlator forwarding commands through handles.
// ds may be nil.
func NewCorrelator(
	handles HandleLookup,
	ds store.DataStore,
	clock utils.Clock,
) *Correlator {
	return &Correlator{
		commands: make(map[int64]*model.Command),
		handles:  handles,
		store:    ds,
		clock:    utils.ClockOrDefault(clock),
	}
}

// OnFailed sets the function notified of failed commands.
func (c *Correlator) OnFailed(fn FailedFunc) {
	c.mu.Lock()
	c.onFailed = fn
	c.mu.Unlock()
}

// Seed makes the next issued id greater than lastID.
func (c *Correlator) Seed(lastID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lastID > c.lastID {
		c.lastID = lastID
	}
}

// Submit sends a command to deviceID and returns the assigned id without
// waiting for the result. It fails with ErrDeviceNotConnected, creating no
// record, if the device has no live handle.
func (c *Correlator) Submit(
	ctx context.Context,
	deviceID string,
	name string,
	params map[string]interface{},
) (*model.Command, error) {
	l := log.FromContext(ctx)

	h, ok := c.handles.LookupHandle(deviceID)
	if !ok {
		return nil, ErrDeviceNotConnected
	}

	c.mu.Lock()
	c.lastID++
	cmd := &model.Command{
		ID:        c.lastID,
		DeviceID:  deviceID,
		Command:   name,
		Params:    params,
		Status:    model.CommandStatusPending,
		CreatedTs: c.clock.Now(),
	}
	c.commands[cmd.ID] = cmd
	msg := model.NewCommandMessage(cmd)
	record := *cmd
	c.mu.Unlock()

	if c.store != nil {
		ctxStore, cancel := context.WithTimeout(ctx, PersistenceTimeout)
		if err := c.store.InsertCommand(ctxStore, &record); err != nil {
			l.Errorf("failed to record command %d: %s", record.ID, err.Error())
		}
		cancel()
	}

	if err := h.Send(msg); err != nil {
		l.Warnf("failed to send command %d to device %s: %s",
			record.ID, deviceID, err.Error())
		c.fail(ctx, record.ID, err.Error())
		return nil, errors.Wrap(ErrDeviceNotConnected, err.Error())
	}
	return &record, nil
}

// Resolve completes the pending command commandID issued to deviceID with
// result. Commands issued to another device are reported as
// ErrCommandNotFound. A second result for the same command is ignored and
// reported as ErrCommandResolved.
func (c *Correlator) Resolve(
	ctx context.Context,
	deviceID string,
	commandID int64,
	result interface{},
) (*model.Command, error) {
	c.mu.Lock()
	cmd, ok := c.commands[commandID]
	if !ok || cmd.DeviceID != deviceID {
		c.mu.Unlock()
		return nil, ErrCommandNotFound
	} else if cmd.Terminal() {
		c.mu.Unlock()
		return nil, ErrCommandResolved
	}
	record := c.completeLocked(cmd, result)
	c.mu.Unlock()

	c.persist(ctx, &record)
	return &record, nil
}

// ResolveOldest completes the oldest pending command named name of
// deviceID. Device agents which do not echo the command id are correlated
// this way.
func (c *Correlator) ResolveOldest(
	ctx context.Context,
	deviceID string,
	name string,
	result interface{},
) (*model.Command, error) {
	c.mu.Lock()
	var oldest *model.Command
	for _, cmd := range c.commands {
		if cmd.DeviceID != deviceID || cmd.Command != name || cmd.Terminal() {
			continue
		}
		if oldest == nil || cmd.ID < oldest.ID {
			oldest = cmd
		}
	}
	if oldest == nil {
		c.mu.Unlock()
		return nil, ErrCommandNotFound
	}
	record := c.completeLocked(oldest, result)
	c.mu.Unlock()

	c.persist(ctx, &record)
	return &record, nil
}

func (c *Correlator) completeLocked(
	cmd *model.Command,
	result interface{},
) model.Command {
	now := c.clock.Now()
	cmd.Status = model.CommandStatusCompleted
	cmd.Result = result
	cmd.CompletedTs = &now
	return *cmd
}

func (c *Correlator) fail(ctx context.Context, commandID int64, reason string) {
	c.mu.Lock()
	cmd, ok := c.commands[commandID]
	if !ok || cmd.Terminal() {
		c.mu.Unlock()
		return
	}
	now := c.clock.Now()
	cmd.Status = model.CommandStatusFailed
	cmd.Error = reason
	cmd.CompletedTs = &now
	record := *cmd
	onFailed := c.onFailed
	c.mu.Unlock()

	c.persist(ctx, &record)
	if onFailed != nil {
		onFailed(ctx, record)
	}
}

func (c *Correlator) persist(ctx context.Context, cmd *model.Command) {
	if c.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, PersistenceTimeout)
	defer cancel()
	if err := c.store.UpdateCommand(ctx, cmd); err != nil {
		log.FromContext(ctx).
			Errorf("failed to update command %d: %s", cmd.ID, err.Error())
	}
}

// StatusOf returns the command commandID. Commands issued before the
// process started are read from the data store.
func (c *Correlator) StatusOf(
	ctx context.Context,
	commandID int64,
) (*model.Command, error) {
	c.mu.Lock()
	cmd, ok := c.commands[commandID]
	if ok {
		record := *cmd
		c.mu.Unlock()
		return &record, nil
	}
	c.mu.Unlock()

	if c.store == nil {
		return nil, ErrCommandNotFound
	}
	stored, err := c.store.GetCommand(ctx, commandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up command")
	} else if stored == nil {
		return nil, ErrCommandNotFound
	}
	return stored, nil
}

// Expire fails every pending command issued before now-timeout and returns
// their ids, oldest first.
func (c *Correlator) Expire(
	ctx context.Context,
	now time.Time,
	timeout time.Duration,
) []int64 {
	if timeout <= 0 {
		return nil
	}
	deadline := now.Add(-timeout)

	c.mu.Lock()
	var expired []model.Command
	for _, cmd := range c.commands {
		if cmd.Terminal() || !cmd.CreatedTs.Before(deadline) {
			continue
		}
		completed := now
		cmd.Status = model.CommandStatusFailed
		cmd.Error = CommandTimeoutError
		cmd.CompletedTs = &completed
		expired = append(expired, *cmd)
	}
	onFailed := c.onFailed
	c.mu.Unlock()

	sort.Slice(expired, func(i, j int) bool {
		return expired[i].ID < expired[j].ID
	})
	ids := make([]int64, len(expired))
	for i := range expired {
		c.persist(ctx, &expired[i])
		if onFailed != nil {
			onFailed(ctx, expired[i])
		}
		ids[i] = expired[i].ID
	}
	return ids
}

// Prune drops resolved commands completed before the given time from
// memory. Pending commands are kept.
func (c *Correlator) Prune(before time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, cmd := range c.commands {
		if cmd.Terminal() && cmd.CompletedTs != nil &&
			cmd.CompletedTs.Before(before) {
			delete(c.commands, id)
			n++
		}
	}
	return n
}

// Pending returns the number of unresolved commands.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, cmd := range c.commands {
		if !cmd.Terminal() {
			n++
		}
	}
	return n
}

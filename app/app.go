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
	"sync"
	"sync/atomic"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/model"
	"github.com/smartc-ai/devicehub/store"
	"github.com/smartc-ai/devicehub/utils"
)

var (
	ErrDeviceNotFound     = errors.New("device not found")
	ErrDeviceNotConnected = errors.New("device not connected")
	ErrScreenshotNotFound = errors.New("no screenshot available")
	ErrUnauthorized       = errors.New("unauthorized")
)

// EventPublisher forwards hub events to external subscribers.
type EventPublisher interface {
	PublishEvent(ev *model.Event) error
}

// App interface describes the device hub use cases
//
//nolint:lll
type App interface {
	HealthCheck(ctx context.Context) error
	Stats() model.HubStats
	Uptime() time.Duration
	Start(ctx context.Context) error
	RegisterDevice(ctx context.Context, deviceID string, meta model.DeviceMetadata, h Handle) (string, error)
	DeviceHeartbeat(ctx context.Context, deviceID string, meta model.DeviceMetadata) bool
	DeviceDisconnected(ctx context.Context, deviceID string, h Handle) bool
	SaveScreenshot(ctx context.Context, deviceID string, image string) bool
	GetScreenshot(ctx context.Context, deviceID string) (*model.Screenshot, error)
	ConfigUpdated(ctx context.Context, deviceID string, status string)
	ListDevices(ctx context.Context) []model.DeviceSession
	GetDevice(ctx context.Context, deviceID string) (*model.DeviceSession, error)
	SendToDevice(ctx context.Context, deviceID string, msg *model.OutboundMessage) error
	SubmitCommand(ctx context.Context, deviceID string, name string, params map[string]interface{}) (*model.Command, error)
	HandleCommandResult(ctx context.Context, deviceID string, msg *model.InboundMessage) (*model.Command, error)
	GetCommand(ctx context.Context, commandID int64) (*model.Command, error)
	GetDeviceCommands(ctx context.Context, deviceID string, limit int) ([]model.Command, error)
	GetDeviceLogs(ctx context.Context, deviceID string, limit int) ([]model.DeviceLog, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string)
	Authenticate(ctx context.Context, token string) (string, error)
	SweepPresence(ctx context.Context) []model.DeviceSession
	Shutdown(timeout time.Duration)
	ShutdownDone()
	RegisterShutdownCancel(context.CancelFunc) uint32
	UnregisterShutdownCancel(uint32)
}

type app struct {
	registry    *Registry
	correlator  *Correlator
	tokens      *TokenStore
	monitor     *PresenceMonitor
	screenshots *screenshotCache
	deviceLocks *deviceLocks
	store       store.DataStore
	startedAt   time.Time

	shutdownCancels  map[uint32]context.CancelFunc
	shutdownCancelsM *sync.Mutex
	shutdownDone     chan struct{}
	shutdownOnce     sync.Once
	Config
}

// Config holds the optional collaborators and policy of the hub.
type Config struct {
	Presence      PresenceConfig
	TokenTTL      time.Duration
	Authenticator Authenticator
	Events        EventPublisher
	Clock         utils.Clock
}

// New returns the device hub. ds may be nil, in which case nothing is
// persisted.
func New(ds store.DataStore, config ...Config) App {
	conf := Config{}
	for _, cfgIn := range config {
		if cfgIn.Presence != (PresenceConfig{}) {
			conf.Presence = cfgIn.Presence
		}
		if cfgIn.TokenTTL > 0 {
			conf.TokenTTL = cfgIn.TokenTTL
		}
		if cfgIn.Authenticator != nil {
			conf.Authenticator = cfgIn.Authenticator
		}
		if cfgIn.Events != nil {
			conf.Events = cfgIn.Events
		}
		if cfgIn.Clock != nil {
			conf.Clock = cfgIn.Clock
		}
	}
	conf.Clock = utils.ClockOrDefault(conf.Clock)

	a := &app{
		registry:         NewRegistry(conf.Clock),
		tokens:           NewTokenStore(conf.TokenTTL, conf.Clock),
		screenshots:      newScreenshotCache(),
		deviceLocks:      newDeviceLocks(),
		store:            ds,
		startedAt:        conf.Clock.Now(),
		Config:           conf,
		shutdownCancels:  make(map[uint32]context.CancelFunc),
		shutdownCancelsM: &sync.Mutex{},
		shutdownDone:     make(chan struct{}),
	}
	a.correlator = NewCorrelator(a.registry, ds, conf.Clock)
	a.correlator.OnFailed(a.commandFailed)
	a.monitor = NewPresenceMonitor(
		a.registry, a.correlator, a.tokens, ds,
		conf.Presence, conf.Clock, a.devicesOffline,
	)
	return a
}

func (a *app) HealthCheck(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Ping(ctx)
}

func (a *app) Stats() model.HubStats {
	connected, registered := a.registry.Counts()
	return model.HubStats{
		DevicesConnected:  connected,
		DevicesRegistered: registered,
	}
}

func (a *app) Uptime() time.Duration {
	return a.Clock.Now().Sub(a.startedAt)
}

// Start restores the persisted device list, seeds the command counter and
// starts the presence monitor.
func (a *app) Start(ctx context.Context) error {
	l := log.FromContext(ctx)
	if a.store != nil {
		devices, err := a.store.ListDevices(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load devices")
		}
		n := a.registry.Restore(devices)
		l.Infof("restored %d devices", n)

		lastID, err := a.store.LastCommandID(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to load the last command id")
		}
		a.correlator.Seed(lastID)
	}
	return a.monitor.Start(ctx)
}

func (a *app) RegisterDevice(
	ctx context.Context,
	deviceID string,
	meta model.DeviceMetadata,
	h Handle,
) (string, error) {
	if deviceID != "" {
		if err := model.ValidateDeviceID(deviceID); err != nil {
			return "", errors.Wrap(err, "invalid device id")
		}
	}
	deviceID = a.registry.Register(deviceID, meta, h)
	log.FromContext(ctx).Infof("device registered: %s", deviceID)

	a.persistDevice(ctx, deviceID)
	a.addLog(ctx, deviceID, model.DeviceLogRegister,
		"Device registered", nil)
	a.publish(ctx, &model.Event{
		Type:     model.EventDeviceOnline,
		DeviceID: deviceID,
	})
	return deviceID, nil
}

func (a *app) DeviceHeartbeat(
	ctx context.Context,
	deviceID string,
	meta model.DeviceMetadata,
) bool {
	if !a.registry.Touch(deviceID, meta) {
		log.FromContext(ctx).
			Debugf("heartbeat from unknown device %s dropped", deviceID)
		return false
	}
	return true
}

func (a *app) DeviceDisconnected(
	ctx context.Context,
	deviceID string,
	h Handle,
) bool {
	if !a.registry.Disconnect(deviceID, h) {
		return false
	}
	log.FromContext(ctx).Infof("device disconnected: %s", deviceID)
	a.setOffline(ctx, deviceID)
	a.addLog(ctx, deviceID, model.DeviceLogDisconnect,
		"Device disconnected", nil)
	return true
}

// devicesOffline records the sessions demoted by the presence monitor.
func (a *app) devicesOffline(ctx context.Context, demoted []model.DeviceSession) {
	for _, sess := range demoted {
		a.setOffline(ctx, sess.ID)
		a.addLog(ctx, sess.ID, model.DeviceLogOffline,
			"Device went offline", map[string]interface{}{
				"last_seen": sess.LastSeen,
			})
	}
}

// persistDevice writes the current session of deviceID. Writes for one
// device are serialized and always take the registry state at the time of
// the write, so the last write reflects the latest status.
func (a *app) persistDevice(ctx context.Context, deviceID string) {
	if a.store == nil {
		return
	}
	unlock := a.deviceLocks.lock(deviceID)
	defer unlock()
	sess, ok := a.registry.Get(deviceID)
	if !ok {
		return
	}
	ctxStore, cancel := context.WithTimeout(ctx, PersistenceTimeout)
	defer cancel()
	if err := a.store.UpsertDevice(ctxStore, &sess); err != nil {
		log.FromContext(ctx).
			Errorf("failed to record device %s: %s", deviceID, err.Error())
	}
}

func (a *app) setOffline(ctx context.Context, deviceID string) {
	if a.store != nil {
		a.persistOffline(ctx, deviceID)
	}
	a.publish(ctx, &model.Event{
		Type:     model.EventDeviceOffline,
		DeviceID: deviceID,
	})
}

func (a *app) persistOffline(ctx context.Context, deviceID string) {
	unlock := a.deviceLocks.lock(deviceID)
	defer unlock()
	if sess, ok := a.registry.Get(deviceID); ok && sess.Online() {
		// registered again, the new session was written by persistDevice
		return
	}
	ctxStore, cancel := context.WithTimeout(ctx, PersistenceTimeout)
	defer cancel()
	err := a.store.SetDeviceStatus(ctxStore, deviceID, model.DeviceStatusOffline)
	if err != nil {
		log.FromContext(ctx).Errorf(
			"failed to record device %s offline: %s",
			deviceID, err.Error())
	}
}

func (a *app) SaveScreenshot(ctx context.Context, deviceID, image string) bool {
	if _, ok := a.registry.Get(deviceID); !ok {
		return false
	}
	a.screenshots.put(deviceID, model.Screenshot{
		Image:     image,
		Timestamp: a.Clock.Now(),
	})
	return true
}

func (a *app) GetScreenshot(
	ctx context.Context,
	deviceID string,
) (*model.Screenshot, error) {
	if _, ok := a.registry.Get(deviceID); !ok {
		return nil, ErrDeviceNotFound
	}
	shot, ok := a.screenshots.get(deviceID)
	if !ok {
		return nil, ErrScreenshotNotFound
	}
	return &shot, nil
}

func (a *app) ConfigUpdated(ctx context.Context, deviceID, status string) {
	log.FromContext(ctx).Infof("device %s config updated", deviceID)
	a.addLog(ctx, deviceID, model.DeviceLogConfigUpdated,
		"Device confirmed config update", map[string]interface{}{
			"status": status,
		})
}

func (a *app) ListDevices(ctx context.Context) []model.DeviceSession {
	return a.registry.Snapshot()
}

func (a *app) GetDevice(
	ctx context.Context,
	deviceID string,
) (*model.DeviceSession, error) {
	sess, ok := a.registry.Get(deviceID)
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return &sess, nil
}

// SendToDevice pushes an uncorrelated message to a connected device.
func (a *app) SendToDevice(
	ctx context.Context,
	deviceID string,
	msg *model.OutboundMessage,
) error {
	h, ok := a.registry.LookupHandle(deviceID)
	if !ok {
		return ErrDeviceNotConnected
	}
	if err := h.Send(msg); err != nil {
		return errors.Wrap(ErrDeviceNotConnected, err.Error())
	}
	return nil
}

func (a *app) SubmitCommand(
	ctx context.Context,
	deviceID string,
	name string,
	params map[string]interface{},
) (*model.Command, error) {
	cmd, err := a.correlator.Submit(ctx, deviceID, name, params)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).
		Infof("command %d (%s) sent to device %s", cmd.ID, name, deviceID)
	a.addLog(ctx, deviceID, model.DeviceLogCommand,
		"Command "+name+" sent", map[string]interface{}{
			"command_id": cmd.ID,
			"params":     params,
		})
	a.publish(ctx, &model.Event{
		Type:      model.EventCommandSubmitted,
		DeviceID:  deviceID,
		CommandID: cmd.ID,
		Command:   name,
	})
	return cmd, nil
}

// HandleCommandResult correlates a command_result frame received from
// deviceID. Results for unknown or already resolved commands, or for
// commands issued to another device, are reported as errors for the caller
// to log and drop.
func (a *app) HandleCommandResult(
	ctx context.Context,
	deviceID string,
	msg *model.InboundMessage,
) (*model.Command, error) {
	var (
		cmd *model.Command
		err error
	)
	if msg.CommandID != nil {
		cmd, err = a.correlator.Resolve(
			ctx, deviceID, *msg.CommandID, msg.Result,
		)
	} else {
		cmd, err = a.correlator.ResolveOldest(
			ctx, deviceID, msg.Command, msg.Result,
		)
	}
	if err != nil {
		return nil, err
	}
	a.addLog(ctx, cmd.DeviceID, model.DeviceLogCommandResult,
		"Command "+cmd.Command+" completed", map[string]interface{}{
			"command_id": cmd.ID,
			"result":     cmd.Result,
		})
	a.publish(ctx, &model.Event{
		Type:      model.EventCommandCompleted,
		DeviceID:  cmd.DeviceID,
		CommandID: cmd.ID,
		Command:   cmd.Command,
		Result:    cmd.Result,
	})
	return cmd, nil
}

// commandFailed records commands that failed or timed out.
func (a *app) commandFailed(ctx context.Context, cmd model.Command) {
	a.addLog(ctx, cmd.DeviceID, model.DeviceLogCommandResult,
		"Command "+cmd.Command+" failed", map[string]interface{}{
			"command_id": cmd.ID,
			"error":      cmd.Error,
		})
	a.publish(ctx, &model.Event{
		Type:      model.EventCommandFailed,
		DeviceID:  cmd.DeviceID,
		CommandID: cmd.ID,
		Command:   cmd.Command,
		Result:    cmd.Error,
	})
}

func (a *app) GetCommand(
	ctx context.Context,
	commandID int64,
) (*model.Command, error) {
	return a.correlator.StatusOf(ctx, commandID)
}

func (a *app) GetDeviceCommands(
	ctx context.Context,
	deviceID string,
	limit int,
) ([]model.Command, error) {
	if _, ok := a.registry.Get(deviceID); !ok {
		return nil, ErrDeviceNotFound
	}
	if a.store == nil {
		return []model.Command{}, nil
	}
	return a.store.GetDeviceCommands(ctx, deviceID, clampLimit(limit, DeviceCommandsDefaultLimit))
}

func (a *app) GetDeviceLogs(
	ctx context.Context,
	deviceID string,
	limit int,
) ([]model.DeviceLog, error) {
	if _, ok := a.registry.Get(deviceID); !ok {
		return nil, ErrDeviceNotFound
	}
	if a.store == nil {
		return []model.DeviceLog{}, nil
	}
	return a.store.GetDeviceLogs(ctx, deviceID, clampLimit(limit, DeviceLogsDefaultLimit))
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	} else if limit > HistoryMaxLimit {
		return HistoryMaxLimit
	}
	return limit
}

func (a *app) Login(ctx context.Context, username, password string) (string, error) {
	if a.Authenticator == nil ||
		!a.Authenticator.Authenticate(ctx, username, password) {
		log.FromContext(ctx).Warnf("failed login attempt for %q", username)
		return "", ErrUnauthorized
	}
	return a.tokens.Issue(username)
}

func (a *app) Logout(ctx context.Context, token string) {
	a.tokens.Revoke(token)
}

func (a *app) Authenticate(ctx context.Context, token string) (string, error) {
	username, ok := a.tokens.Validate(token)
	if !ok {
		return "", ErrUnauthorized
	}
	return username, nil
}

func (a *app) SweepPresence(ctx context.Context) []model.DeviceSession {
	return a.monitor.Sweep(ctx)
}

func (a *app) addLog(
	ctx context.Context,
	deviceID string,
	logType model.DeviceLogType,
	message string,
	data interface{},
) {
	if a.store == nil {
		return
	}
	ctxStore, cancel := context.WithTimeout(ctx, PersistenceTimeout)
	defer cancel()
	err := a.store.InsertLog(ctxStore, &model.DeviceLog{
		DeviceID:  deviceID,
		Type:      logType,
		Message:   message,
		Data:      data,
		CreatedTs: a.Clock.Now(),
	})
	if err != nil {
		log.FromContext(ctx).Errorf(
			"failed to record %s log for device %s: %s",
			logType, deviceID, err.Error())
	}
}

func (a *app) publish(ctx context.Context, ev *model.Event) {
	if a.Events == nil {
		return
	}
	ev.Timestamp = a.Clock.Now()
	if err := a.Events.PublishEvent(ev); err != nil {
		log.FromContext(ctx).Warnf(
			"failed to publish %s event: %s", ev.Type, err.Error())
	}
}

// Shutdown stops the presence monitor, cancels every registered device
// connection spreading the cancellations over timeout and closes what is
// left in the registry.
func (a *app) Shutdown(timeout time.Duration) {
	a.monitor.Stop()

	a.shutdownCancelsM.Lock()
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	ticker := time.NewTicker(timeout / time.Duration(len(a.shutdownCancels)+1))
	for _, cancel := range a.shutdownCancels {
		cancel()
		<-ticker.C
	}
	<-ticker.C
	ticker.Stop()
	a.shutdownCancelsM.Unlock()

	a.registry.CloseAll()
	a.shutdownOnce.Do(func() {
		close(a.shutdownDone)
	})
}

func (a *app) ShutdownDone() {
	<-a.shutdownDone
}

var shutdownID uint32

func (a *app) RegisterShutdownCancel(cancel context.CancelFunc) uint32 {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	id := atomic.AddUint32(&shutdownID, 1)
	a.shutdownCancels[id] = cancel
	return id
}

func (a *app) UnregisterShutdownCancel(id uint32) {
	a.shutdownCancelsM.Lock()
	defer a.shutdownCancelsM.Unlock()
	delete(a.shutdownCancels, id)
}

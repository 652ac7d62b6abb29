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
	"fmt"
	"sync"
	"time"

	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/smartc-ai/devicehub/model"
	"github.com/smartc-ai/devicehub/store"
	"github.com/smartc-ai/devicehub/utils"
)

const (
	DefaultPresenceInterval    = 30 * time.Second
	DefaultStaleThreshold      = 60 * time.Second
	DefaultLogRetention        = 7 * 24 * time.Hour
	DefaultMaintenanceSchedule = "@daily"
)

// PresenceConfig holds the presence and retention policy.
type PresenceConfig struct {
	// Interval between two presence sweeps.
	Interval time.Duration
	// StaleThreshold is the longest silence tolerated from an online
	// device.
	StaleThreshold time.Duration
	// CommandTimeout fails pending commands older than this; zero keeps
	// them pending forever.
	CommandTimeout time.Duration
	// LogRetention is how long device logs and resolved commands are kept.
	LogRetention time.Duration
	// MaintenanceSchedule is the cron spec of the retention job.
	MaintenanceSchedule string
}

func (c PresenceConfig) withDefaults() PresenceConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultPresenceInterval
	}
	if c.StaleThreshold <= 0 {
		c.StaleThreshold = DefaultStaleThreshold
	}
	if c.LogRetention <= 0 {
		c.LogRetention = DefaultLogRetention
	}
	if c.MaintenanceSchedule == "" {
		c.MaintenanceSchedule = DefaultMaintenanceSchedule
	}
	return c
}

// OfflineFunc is notified of the sessions demoted by a sweep.
type OfflineFunc func(ctx context.Context, demoted []model.DeviceSession)

// PresenceMonitor periodically reconciles the registry against last-seen
// timestamps and evicts expired data.
type PresenceMonitor struct {
	registry   *Registry
	correlator *Correlator
	tokens     *TokenStore
	store      store.DataStore
	clock      utils.Clock
	onOffline  OfflineFunc
	config     PresenceConfig

	mu    sync.Mutex
	sched *cron.Cron
}

// NewPresenceMonitor returns a stopped monitor. correlator, tokens, ds and
// onOffline may be nil.
func NewPresenceMonitor(
	registry *Registry,
	correlator *Correlator,
	tokens *TokenStore,
	ds store.DataStore,
	config PresenceConfig,
	clock utils.Clock,
	onOffline OfflineFunc,
) *PresenceMonitor {
	return &PresenceMonitor{
		registry:   registry,
		correlator: correlator,
		tokens:     tokens,
		store:      ds,
		clock:      utils.ClockOrDefault(clock),
		onOffline:  onOffline,
		config:     config.withDefaults(),
	}
}

// Config returns the effective policy.
func (m *PresenceMonitor) Config() PresenceConfig {
	return m.config
}

// Sweep runs one presence tick and returns the demoted sessions. Running
// it twice in a row is a no-op the second time.
func (m *PresenceMonitor) Sweep(ctx context.Context) []model.DeviceSession {
	l := log.FromContext(ctx)
	now := m.clock.Now()

	demoted := m.registry.SweepStale(now, m.config.StaleThreshold)
	for _, sess := range demoted {
		l.Infof("device %s is offline, last seen %s",
			sess.ID, sess.LastSeen.Format(time.RFC3339))
	}
	if len(demoted) > 0 && m.onOffline != nil {
		m.onOffline(ctx, demoted)
	}

	if m.correlator != nil {
		if ids := m.correlator.Expire(
			ctx, now, m.config.CommandTimeout,
		); len(ids) > 0 {
			l.Warnf("%d commands timed out: %v", len(ids), ids)
		}
	}
	if m.tokens != nil {
		if n := m.tokens.Purge(now); n > 0 {
			l.Debugf("purged %d expired tokens", n)
		}
	}
	return demoted
}

// Maintain removes device logs and resolved commands past the retention
// window.
func (m *PresenceMonitor) Maintain(ctx context.Context) {
	l := log.FromContext(ctx)
	before := m.clock.Now().Add(-m.config.LogRetention)

	if m.correlator != nil {
		if n := m.correlator.Prune(before); n > 0 {
			l.Infof("pruned %d resolved commands", n)
		}
	}
	if m.store == nil {
		return
	}
	n, err := m.store.DeleteLogsBefore(ctx, before)
	if err != nil {
		l.Errorf("failed to clean up device logs: %s", err.Error())
		return
	}
	l.Infof("removed %d device logs older than %s",
		n, before.Format(time.RFC3339))
}

// Start schedules the sweep and maintenance jobs. The jobs run with ctx.
func (m *PresenceMonitor) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sched != nil {
		return errors.New("presence monitor already started")
	}

	sched := cron.New()
	_, err := sched.AddFunc(
		fmt.Sprintf("@every %s", m.config.Interval),
		func() { m.Sweep(ctx) },
	)
	if err != nil {
		return errors.Wrap(err, "invalid presence interval")
	}
	_, err = sched.AddFunc(m.config.MaintenanceSchedule, func() {
		m.Maintain(ctx)
	})
	if err != nil {
		return errors.Wrap(err, "invalid maintenance schedule")
	}
	sched.Start()
	m.sched = sched
	return nil
}

// Stop unschedules the jobs and waits for running ones to return.
func (m *PresenceMonitor) Stop() {
	m.mu.Lock()
	sched := m.sched
	m.sched = nil
	m.mu.Unlock()
	if sched != nil {
		<-sched.Stop().Done()
	}
}

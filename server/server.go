// Copyright 2020 Northern.tech AS
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

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"

	api "github.com/smartc-ai/devicehub/api/http"
	"github.com/smartc-ai/devicehub/app"
	"github.com/smartc-ai/devicehub/client/nats"
	dconfig "github.com/smartc-ai/devicehub/config"
	"github.com/smartc-ai/devicehub/store"
)

const shutdownTimeout = 5 * time.Second

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx := context.Background()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	appConfig, err := NewAppConfig(conf)
	if err != nil {
		return err
	}

	if natsURI := conf.GetString(dconfig.SettingNatsURI); natsURI != "" {
		natsClient, err := nats.NewClientWithDefaults(natsURI)
		if err != nil {
			return errors.Wrap(err, "failed to connect to nats")
		}
		defer natsClient.Close()
		appConfig.Events = natsClient
	} else {
		l.Info("nats_uri is not set, hub events will not be published")
	}

	hub := app.New(dataStore, *appConfig)
	if err := hub.Start(ctx); err != nil {
		return err
	}

	api.SetAcceptedOrigins(SplitList(conf.GetString(dconfig.SettingAllowedOrigins)))
	router, err := api.NewRouter(hub, &api.Config{
		DeviceSecret:   conf.GetString(dconfig.SettingDeviceSecret),
		AllowedOrigins: SplitList(conf.GetString(dconfig.SettingAllowedOrigins)),
	})
	if err != nil {
		l.Fatal(err)
	}

	var listen = conf.GetString(dconfig.SettingListen)
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		l.Infof("listening on %s", listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	<-quit

	l.Info("Shutdown Server ...")

	hub.Shutdown(shutdownTimeout)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Fatal("Server Shutdown: ", err)
	}

	return nil
}

// NewAppConfig builds the hub policy from the configuration.
func NewAppConfig(conf config.Reader) (*app.Config, error) {
	durations := map[string]*time.Duration{}
	appConfig := &app.Config{}
	durations[dconfig.SettingPresenceInterval] = &appConfig.Presence.Interval
	durations[dconfig.SettingPresenceThreshold] = &appConfig.Presence.StaleThreshold
	durations[dconfig.SettingCommandTimeout] = &appConfig.Presence.CommandTimeout
	durations[dconfig.SettingLogRetention] = &appConfig.Presence.LogRetention
	durations[dconfig.SettingTokenTTL] = &appConfig.TokenTTL
	for key, dst := range durations {
		d := conf.GetDuration(key)
		if d < 0 {
			return nil, errors.Errorf("invalid value for %s: negative duration", key)
		}
		*dst = d
	}
	appConfig.Presence.MaintenanceSchedule = conf.GetString(dconfig.SettingMaintenanceSchedule)

	password := conf.GetString(dconfig.SettingAdminPassword)
	if password == "" {
		log.FromContext(context.Background()).Warn("admin_password is not set, operator login is disabled")
	}
	appConfig.Authenticator = app.NewStaticAuthenticator(
		conf.GetString(dconfig.SettingAdminUsername),
		password,
	)
	return appConfig, nil
}

// SplitList splits a comma or space separated configuration value.
func SplitList(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

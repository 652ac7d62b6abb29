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

package server

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dconfig "github.com/smartc-ai/devicehub/config"
)

func newTestConfig(settings map[string]string) *viper.Viper {
	conf := viper.New()
	for _, d := range dconfig.Defaults {
		conf.SetDefault(d.Key, d.Value)
	}
	for key, value := range settings {
		conf.Set(key, value)
	}
	return conf
}

func TestNewAppConfig(t *testing.T) {
	testCases := []struct {
		Name     string
		Settings map[string]string

		Interval       time.Duration
		StaleThreshold time.Duration
		CommandTimeout time.Duration
		TokenTTL       time.Duration
		Error          string
	}{
		{
			Name: "defaults",

			Interval:       30 * time.Second,
			StaleThreshold: 60 * time.Second,
		},
		{
			Name: "overrides",
			Settings: map[string]string{
				dconfig.SettingPresenceInterval:  "5s",
				dconfig.SettingPresenceThreshold: "15s",
				dconfig.SettingCommandTimeout:    "2m",
				dconfig.SettingTokenTTL:          "12h",
			},

			Interval:       5 * time.Second,
			StaleThreshold: 15 * time.Second,
			CommandTimeout: 2 * time.Minute,
			TokenTTL:       12 * time.Hour,
		},
		{
			Name: "negative interval",
			Settings: map[string]string{
				dconfig.SettingPresenceInterval: "-30s",
			},

			Error: "invalid value for presence_interval: negative duration",
		},
		{
			Name: "negative duration",
			Settings: map[string]string{
				dconfig.SettingCommandTimeout: "-1s",
			},

			Error: "invalid value for command_timeout: negative duration",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			appConfig, err := NewAppConfig(newTestConfig(tc.Settings))
			if tc.Error != "" {
				assert.EqualError(t, err, tc.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Interval, appConfig.Presence.Interval)
			assert.Equal(t, tc.StaleThreshold, appConfig.Presence.StaleThreshold)
			assert.Equal(t, tc.CommandTimeout, appConfig.Presence.CommandTimeout)
			assert.Equal(t, tc.TokenTTL, appConfig.TokenTTL)
			assert.Equal(t, 168*time.Hour, appConfig.Presence.LogRetention)
			assert.Equal(t, "@daily", appConfig.Presence.MaintenanceSchedule)
		})
	}
}

func TestNewAppConfigCredentials(t *testing.T) {
	appConfig, err := NewAppConfig(newTestConfig(map[string]string{
		dconfig.SettingAdminPassword: "s3cret",
	}))
	require.NoError(t, err)

	ctx := context.Background()
	assert.True(t, appConfig.Authenticator.Authenticate(ctx, "admin", "s3cret"))
	assert.False(t, appConfig.Authenticator.Authenticate(ctx, "admin", ""))

	appConfig, err = NewAppConfig(newTestConfig(nil))
	require.NoError(t, err)
	assert.False(t, appConfig.Authenticator.Authenticate(ctx, "admin", ""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{
		"https://a.example.com",
		"https://b.example.com",
		"http://localhost:5173",
	}, SplitList("https://a.example.com, https://b.example.com http://localhost:5173"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , "))
}

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

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":3000"

	// SettingNatsURI is the config key for the nats uri; events are not
	// published when it is empty
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = ""

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://localhost:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "smartc"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingDeviceSecret is the config key for the shared secret devices
	// present when registering; registration is open when it is empty
	SettingDeviceSecret = "device_secret"

	// SettingAdminUsername is the config key for the operator login name
	SettingAdminUsername = "admin_username"
	// SettingAdminUsernameDefault is the default operator login name
	SettingAdminUsernameDefault = "admin"

	// SettingAdminPassword is the config key for the operator password,
	// either in clear text or as a bcrypt hash
	SettingAdminPassword = "admin_password"

	// SettingAllowedOrigins is the config key for the origins allowed to
	// reach the API from a browser; all origins are allowed when empty
	SettingAllowedOrigins = "allowed_origins"

	// SettingPresenceInterval is the config key for the interval between
	// presence sweeps
	SettingPresenceInterval = "presence_interval"
	// SettingPresenceIntervalDefault is the default presence sweep interval
	SettingPresenceIntervalDefault = "30s"

	// SettingPresenceThreshold is the config key for the time without a
	// message after which a device is considered offline
	SettingPresenceThreshold = "presence_threshold"
	// SettingPresenceThresholdDefault is the default stale threshold
	SettingPresenceThresholdDefault = "60s"

	// SettingCommandTimeout is the config key for the time after which a
	// pending command fails; zero disables the timeout
	SettingCommandTimeout = "command_timeout"
	// SettingCommandTimeoutDefault is the default command timeout
	SettingCommandTimeoutDefault = "0s"

	// SettingTokenTTL is the config key for the lifetime of operator
	// tokens; zero means tokens never expire
	SettingTokenTTL = "token_ttl"
	// SettingTokenTTLDefault is the default token lifetime
	SettingTokenTTLDefault = "0s"

	// SettingLogRetention is the config key for how long device logs and
	// finished commands are kept
	SettingLogRetention = "log_retention"
	// SettingLogRetentionDefault is the default retention
	SettingLogRetentionDefault = "168h"

	// SettingMaintenanceSchedule is the config key for the cron spec of the
	// retention job
	SettingMaintenanceSchedule = "maintenance_schedule"
	// SettingMaintenanceScheduleDefault is the default retention schedule
	SettingMaintenanceScheduleDefault = "@daily"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingAdminUsername, Value: SettingAdminUsernameDefault},
		{Key: SettingPresenceInterval, Value: SettingPresenceIntervalDefault},
		{Key: SettingPresenceThreshold, Value: SettingPresenceThresholdDefault},
		{Key: SettingCommandTimeout, Value: SettingCommandTimeoutDefault},
		{Key: SettingTokenTTL, Value: SettingTokenTTLDefault},
		{Key: SettingLogRetention, Value: SettingLogRetentionDefault},
		{Key: SettingMaintenanceSchedule, Value: SettingMaintenanceScheduleDefault},
	}
)

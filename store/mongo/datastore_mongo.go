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

package mongo

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/smartc-ai/devicehub/config"
	"github.com/smartc-ai/devicehub/model"
	"github.com/smartc-ai/devicehub/store"
)

const (
	// DevicesCollectionName refers to the name of the collection of stored devices
	DevicesCollectionName = "devices"

	// CommandsCollectionName refers to the name of the collection of issued commands
	CommandsCollectionName = "commands"

	// LogsCollectionName refers to the name of the collection of device logs
	LogsCollectionName = "device_logs"
)

const (
	dbFieldID        = "_id"
	dbFieldName      = "name"
	dbFieldIP        = "ip"
	dbFieldVersion   = "version"
	dbFieldStatus    = "status"
	dbFieldLastSeen  = "last_seen"
	dbFieldConfig    = "config"
	dbFieldSystem    = "system"
	dbFieldCreatedTs = "created_ts"
	dbFieldUpdatedTs = "updated_ts"
	dbFieldDeviceID  = "device_id"
	dbFieldResult    = "result"
	dbFieldError     = "error"
	dbFieldDoneTs    = "completed_ts"
)

// SetupDataStore connects to mongo and runs the migrations, applying them
// only if automigrate is set.
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to db")
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	err = Migrate(ctx, dataStore.dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}
	return dataStore, nil
}

func disconnectClient(parentCtx context.Context, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(parentCtx, 1*time.Second)
	defer cancel()
	_ = client.Disconnect(ctx)
}

// NewClient returns a mongo client connected according to c.
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Set writeconcern to acknowlage after write has propagated to the
	// mongod instance and commited to the file system journal.
	clientOptions.SetWriteConcern(
		writeconcern.New(writeconcern.W(1), writeconcern.J(true)),
	)

	// Set 10s timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the mongo implementation of store.DataStore
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the hub database.
	dbName string
}

var _ store.DataStore = &DataStoreMongo{}

// NewDataStoreWithClient returns a data store using an open client
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)
	if dbName == "" {
		dbName = DbName
	}

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

func (db *DataStoreMongo) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// UpsertDevice creates or overwrites the record of a device
func (db *DataStoreMongo) UpsertDevice(
	ctx context.Context,
	device *model.DeviceSession,
) error {
	coll := db.collection(DevicesCollectionName)
	now := time.Now()

	set := bson.M{
		dbFieldName:      device.Name,
		dbFieldIP:        device.IP,
		dbFieldVersion:   device.Version,
		dbFieldStatus:    device.Status,
		dbFieldLastSeen:  device.LastSeen,
		dbFieldSystem:    device.System,
		dbFieldUpdatedTs: now,
	}
	if device.Config != nil {
		set[dbFieldConfig] = device.Config
	}
	createdTs := device.CreatedTs
	if createdTs.IsZero() {
		createdTs = now
	}

	updateOpts := mopts.Update().SetUpsert(true)
	_, err := coll.UpdateOne(ctx,
		bson.M{dbFieldID: device.ID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{dbFieldCreatedTs: createdTs},
		},
		updateOpts,
	)
	return err
}

// SetDeviceStatus updates the status of a known device
func (db *DataStoreMongo) SetDeviceStatus(
	ctx context.Context,
	deviceID string,
	status model.DeviceStatus,
) error {
	coll := db.collection(DevicesCollectionName)

	_, err := coll.UpdateOne(ctx,
		bson.M{dbFieldID: deviceID},
		bson.M{
			"$set": bson.M{
				dbFieldStatus:    status,
				dbFieldUpdatedTs: time.Now(),
			},
		},
	)
	return err
}

// ListDevices returns every known device, most recently seen first
func (db *DataStoreMongo) ListDevices(
	ctx context.Context,
) ([]model.DeviceSession, error) {
	coll := db.collection(DevicesCollectionName)

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: dbFieldLastSeen, Value: -1}})
	cur, err := coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	devices := []model.DeviceSession{}
	if err := cur.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// InsertCommand records a newly issued command
func (db *DataStoreMongo) InsertCommand(ctx context.Context, cmd *model.Command) error {
	coll := db.collection(CommandsCollectionName)

	_, err := coll.InsertOne(ctx, cmd)
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrCommandExists
	}
	return err
}

// UpdateCommand records the outcome of a command
func (db *DataStoreMongo) UpdateCommand(ctx context.Context, cmd *model.Command) error {
	coll := db.collection(CommandsCollectionName)

	set := bson.M{
		dbFieldStatus: cmd.Status,
		dbFieldDoneTs: cmd.CompletedTs,
	}
	if cmd.Result != nil {
		set[dbFieldResult] = cmd.Result
	}
	if cmd.Error != "" {
		set[dbFieldError] = cmd.Error
	}
	_, err := coll.UpdateOne(ctx,
		bson.M{dbFieldID: cmd.ID},
		bson.M{"$set": set},
	)
	return err
}

// GetCommand returns a command, or nil if it does not exist
func (db *DataStoreMongo) GetCommand(
	ctx context.Context,
	commandID int64,
) (*model.Command, error) {
	coll := db.collection(CommandsCollectionName)

	cmd := &model.Command{}
	err := coll.FindOne(ctx, bson.M{dbFieldID: commandID}).Decode(cmd)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return cmd, nil
}

// GetDeviceCommands returns the latest commands issued to a device
func (db *DataStoreMongo) GetDeviceCommands(
	ctx context.Context,
	deviceID string,
	limit int,
) ([]model.Command, error) {
	coll := db.collection(CommandsCollectionName)

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: dbFieldID, Value: -1}}).
		SetLimit(int64(limit))
	cur, err := coll.Find(ctx, bson.M{dbFieldDeviceID: deviceID}, findOpts)
	if err != nil {
		return nil, err
	}
	commands := []model.Command{}
	if err := cur.All(ctx, &commands); err != nil {
		return nil, err
	}
	return commands, nil
}

// LastCommandID returns the highest command id ever recorded, or 0
func (db *DataStoreMongo) LastCommandID(ctx context.Context) (int64, error) {
	coll := db.collection(CommandsCollectionName)

	var cmd model.Command
	findOpts := mopts.FindOne().
		SetSort(bson.D{{Key: dbFieldID, Value: -1}}).
		SetProjection(bson.M{dbFieldID: 1})
	err := coll.FindOne(ctx, bson.M{}, findOpts).Decode(&cmd)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return cmd.ID, nil
}

// InsertLog appends an entry to a device's history
func (db *DataStoreMongo) InsertLog(ctx context.Context, entry *model.DeviceLog) error {
	coll := db.collection(LogsCollectionName)

	_, err := coll.InsertOne(ctx, entry)
	return err
}

// GetDeviceLogs returns the latest log entries of a device
func (db *DataStoreMongo) GetDeviceLogs(
	ctx context.Context,
	deviceID string,
	limit int,
) ([]model.DeviceLog, error) {
	coll := db.collection(LogsCollectionName)

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: dbFieldCreatedTs, Value: -1}}).
		SetLimit(int64(limit))
	cur, err := coll.Find(ctx, bson.M{dbFieldDeviceID: deviceID}, findOpts)
	if err != nil {
		return nil, err
	}
	logs := []model.DeviceLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// DeleteLogsBefore removes log entries created before the given time
func (db *DataStoreMongo) DeleteLogsBefore(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	coll := db.collection(LogsCollectionName)

	res, err := coll.DeleteMany(ctx, bson.M{
		dbFieldCreatedTs: bson.M{"$lt": before},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx := context.Background()
	disconnectClient(ctx, db.client)
	return nil
}

// DropDatabase drops the hub database
func (db *DataStoreMongo) DropDatabase() error {
	ctx := context.Background()
	err := db.client.Database(db.dbName).Drop(ctx)
	return err
}

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

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IndexNameDevicesStatus = "status"
	IndexNameCommandsByDev = "device_id_created_ts"
	IndexNameLogsByDevice  = "device_id_created_ts"
	IndexNameLogsCreatedTs = "created_ts"
)

type migration1_0_0 struct {
	client *mongo.Client
	db     string
}

// Up creates the indexes backing the device, command and log queries
func (m *migration1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	database := m.client.Database(m.db)

	indexes := map[string][]mongo.IndexModel{
		DevicesCollectionName: {{
			Keys: bson.D{
				{Key: dbFieldStatus, Value: 1},
			},
			Options: mopts.Index().
				SetName(IndexNameDevicesStatus),
		}},
		CommandsCollectionName: {{
			Keys: bson.D{
				{Key: dbFieldDeviceID, Value: 1},
				{Key: dbFieldCreatedTs, Value: -1},
			},
			Options: mopts.Index().
				SetName(IndexNameCommandsByDev),
		}},
		LogsCollectionName: {{
			Keys: bson.D{
				{Key: dbFieldDeviceID, Value: 1},
				{Key: dbFieldCreatedTs, Value: -1},
			},
			Options: mopts.Index().
				SetName(IndexNameLogsByDevice),
		}, {
			Keys: bson.D{
				{Key: dbFieldCreatedTs, Value: 1},
			},
			Options: mopts.Index().
				SetName(IndexNameLogsCreatedTs),
		}},
	}

	for collName, models := range indexes {
		idx := database.Collection(collName).Indexes()
		if _, err := idx.CreateMany(ctx, models); err != nil {
			return err
		}
	}

	return nil
}

func (m *migration1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}

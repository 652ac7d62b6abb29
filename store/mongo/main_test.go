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
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

// testDB wraps the connection to the mongod instance used by the tests.
type testDB struct {
	client *mongo.Client
}

func (d *testDB) Client() *mongo.Client {
	return d.client
}

// Wipe drops every non-system database.
func (d *testDB) Wipe() {
	ctx := context.Background()
	names, err := d.client.ListDatabaseNames(ctx, map[string]interface{}{})
	if err != nil {
		panic(err)
	}
	for _, name := range names {
		switch name {
		case "admin", "config", "local":
			continue
		}
		_ = d.client.Database(name).Drop(ctx)
	}
}

var db *testDB

// TestMain connects to the database in TEST_MONGO_URL; the tests touching
// the database run only when it is set and the suite is not in short mode.
func TestMain(m *testing.M) {
	url := os.Getenv("TEST_MONGO_URL")
	if url != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, mopts.Client().ApplyURI(url))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()
		if err != nil {
			panic(err)
		}
		db = &testDB{client: client}
	}
	code := m.Run()
	if db != nil {
		db.Wipe()
		_ = db.client.Disconnect(context.Background())
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	if testing.Short() {
		t.Skipf("skipping %s in short mode.", t.Name())
	}
	if db == nil {
		t.Skipf("skipping %s: TEST_MONGO_URL is not set", t.Name())
	}
}

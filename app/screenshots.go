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
	"sync"

	"github.com/smartc-ai/devicehub/model"
)

// screenshotCache keeps the latest screenshot of each device.
type screenshotCache struct {
	mu    sync.RWMutex
	shots map[string]model.Screenshot
}

func newScreenshotCache() *screenshotCache {
	return &screenshotCache{shots: make(map[string]model.Screenshot)}
}

func (c *screenshotCache) put(deviceID string, shot model.Screenshot) {
	c.mu.Lock()
	c.shots[deviceID] = shot
	c.mu.Unlock()
}

func (c *screenshotCache) get(deviceID string) (model.Screenshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	shot, ok := c.shots[deviceID]
	return shot, ok
}

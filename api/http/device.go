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

package http

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/rest.utils"
	"github.com/pkg/errors"

	"github.com/smartc-ai/devicehub/app"
	"github.com/smartc-ai/devicehub/model"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

const (
	HdrKeyOrigin       = "Origin"
	HdrKeyDeviceSecret = "X-Device-Secret"

	queryDeviceSecret = "secret"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     allowAllOrigins,
}

var ErrConnectionClosed = errors.New("connection closed")

// deviceConn is the transport handle of a device; it serializes writes on
// the websocket.
type deviceConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}
}

func newDeviceConn(conn *websocket.Conn) *deviceConn {
	return &deviceConn{
		conn:   conn,
		closed: make(chan struct{}),
	}
}

func (d *deviceConn) Send(msg *model.OutboundMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	select {
	case <-d.closed:
		return ErrConnectionClosed
	default:
	}
	if err = d.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return d.conn.WriteMessage(websocket.TextMessage, b)
}

// Close sends a close frame and closes the connection, unblocking the
// reader.
func (d *deviceConn) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.closed)
		_ = d.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		err = d.conn.Close()
	})
	return err
}

func (d *deviceConn) ping() bool {
	pongWaitString := strconv.Itoa(int(pongWait.Seconds()))
	if err := d.conn.WriteControl(
		websocket.PingMessage,
		[]byte(pongWaitString),
		time.Now().Add(writeWait),
	); err != nil {
		return false
	}
	return true
}

// DeviceController container for end-points
type DeviceController struct {
	app    app.App
	secret string
}

// NewDeviceController returns a new DeviceController
func NewDeviceController(app app.App, secret string) *DeviceController {
	return &DeviceController{
		app:    app,
		secret: secret,
	}
}

func (h DeviceController) authorized(req *http.Request) bool {
	if h.secret == "" {
		return true
	}
	secret := req.Header.Get(HdrKeyDeviceSecret)
	if secret == "" {
		secret = req.URL.Query().Get(queryDeviceSecret)
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) == 1
}

// Connect responds to GET /ws/device and serves the device protocol until
// the connection drops
func (h DeviceController) Connect(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.FromContext(ctx)

	if !h.authorized(c.Request) {
		rest.RenderError(c, http.StatusUnauthorized, errInvalidDeviceSecret)
		return
	}

	// upgrade get request to websocket protocol
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		err = errors.Wrap(err, "unable to upgrade the request to websocket protocol")
		l.Error(err)
		return
	}
	conn.SetReadLimit(app.MessageSizeLimit)
	l.Infof("new device connection from %s", c.ClientIP())

	dc := newDeviceConn(conn)
	defer dc.Close()

	ctxCancel, cancel := context.WithCancel(ctx)
	defer cancel()
	shutdownID := h.app.RegisterShutdownCancel(cancel)
	defer h.app.UnregisterShutdownCancel(shutdownID)

	// handle the ping-pong connection health check
	err = conn.SetReadDeadline(time.Now().Add(pongWait))
	if err != nil {
		l.Error(err)
		return
	}
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	conn.SetPongHandler(func(string) error {
		ticker.Reset(pingPeriod)
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	conn.SetPingHandler(func(msg string) error {
		ticker.Reset(pingPeriod)
		err := conn.SetReadDeadline(time.Now().Add(pongWait))
		if err != nil {
			return err
		}
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(msg),
			time.Now().Add(writeWait),
		)
	})

	session := &deviceSession{
		app:  h.app,
		conn: dc,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.readLoop(ctx)
	}()

Loop:
	for {
		select {
		case <-done:
			break Loop
		case <-ctxCancel.Done():
			break Loop
		case <-ticker.C:
			if !dc.ping() {
				l.Debug("device connection timeout")
				break Loop
			}
		}
	}
	_ = dc.Close()
	<-done

	if deviceID := session.deviceID; deviceID != "" {
		h.app.DeviceDisconnected(ctx, deviceID, dc)
	}
}

// deviceSession holds the protocol state of one device connection. It is
// only accessed by the reading routine.
type deviceSession struct {
	app      app.App
	conn     *deviceConn
	deviceID string
}

func (s *deviceSession) readLoop(ctx context.Context) {
	l := log.FromContext(ctx)
	for {
		_, data, err := s.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
			) {
				l.Warnf("device connection closed: %s", err.Error())
			}
			return
		}
		s.handleMessage(ctx, data)
	}
}

func (s *deviceSession) handleMessage(ctx context.Context, data []byte) {
	l := log.FromContext(ctx)

	msg, err := model.DecodeInboundMessage(data)
	if err != nil {
		l.Warnf("dropping message from device %q: %s", s.deviceID, err.Error())
		return
	}

	if msg.Type == model.MessageTypeRegister {
		s.register(ctx, msg)
		return
	}
	if s.deviceID == "" {
		l.Warnf("dropping %s message from an unregistered device", msg.Type)
		return
	}

	meta := model.DeviceMetadata{}
	if msg.Type == model.MessageTypeHeartbeat {
		meta = msg.Metadata()
	}
	if !s.app.DeviceHeartbeat(ctx, s.deviceID, meta) {
		l.Debugf("device %s is no longer registered", s.deviceID)
	}

	switch msg.Type {
	case model.MessageTypeHeartbeat:
		// recorded above

	case model.MessageTypeScreenshot:
		if !s.app.SaveScreenshot(ctx, s.deviceID, msg.Image) {
			l.Warnf("dropping screenshot of unknown device %s", s.deviceID)
		}

	case model.MessageTypeCommandResult:
		cmd, err := s.app.HandleCommandResult(ctx, s.deviceID, msg)
		if err != nil {
			l.Warnf("dropping command result from device %s: %s",
				s.deviceID, err.Error())
			return
		}
		l.Infof("command %d (%s) completed by device %s",
			cmd.ID, cmd.Command, s.deviceID)

	case model.MessageTypeConfigUpdated:
		s.app.ConfigUpdated(ctx, s.deviceID, msg.Status)

	default:
		l.Warnf("unknown message type %q from device %s", msg.Type, s.deviceID)
	}
}

func (s *deviceSession) register(ctx context.Context, msg *model.InboundMessage) {
	l := log.FromContext(ctx)

	deviceID, err := s.app.RegisterDevice(ctx, msg.DeviceID, msg.Metadata(), s.conn)
	if err != nil {
		l.Warnf("rejecting registration: %s", err.Error())
		return
	}
	if s.deviceID != "" && s.deviceID != deviceID {
		s.app.DeviceDisconnected(ctx, s.deviceID, s.conn)
	}
	s.deviceID = deviceID

	if err := s.conn.Send(model.NewRegisteredMessage(deviceID)); err != nil {
		l.Warnf("failed to acknowledge registration of device %s: %s",
			deviceID, err.Error())
	}
}

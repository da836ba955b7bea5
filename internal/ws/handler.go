package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/chameleongame/backend/internal/engine"
	"github.com/chameleongame/backend/internal/hub"
	"github.com/chameleongame/backend/internal/protocol"
	"github.com/chameleongame/backend/internal/room"
)

const writeTimeout = 3 * time.Second

type role string

const (
	roleHost   role = "host"
	rolePlayer role = "player"
)

func Handler(h *hub.Hub, reg *Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		id := reg.Add(conn)
		defer reg.Remove(id)

		c := &client{
			id:   engine.PlayerID(id),
			conn: conn,
			hub:  h,
			reg:  reg,
			out:  make(chan []byte, 16),
			log:  log.With(zap.String("conn", id)),
		}
		c.run(r.Context())
	}
}

// client is one connection's tenure: at most one room, one role, for life.
type client struct {
	id   engine.PlayerID
	conn *websocket.Conn
	hub  *hub.Hub
	reg  *Registry
	out  chan []byte
	room *room.Room
	role role
	log  *zap.Logger
}

func (c *client) run(ctx context.Context) {
	defer c.leaveRoom()

	writeCtx, writeCancel := context.WithCancel(ctx)
	defer writeCancel()
	go c.writer(writeCtx)

	c.write(ctx, protocol.TypeConnected, protocol.Connected{ID: string(c.id)})

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg protocol.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError(ctx, "bad_json")
			continue
		}
		c.handle(ctx, msg)
	}
}

// writer drains the outbox the room actor fans into. A closed outbox means
// the room is gone; the connection goes with it.
func (c *client) writer(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-c.out:
			if !ok {
				_ = c.conn.Close(websocket.StatusNormalClosure, "room closed")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			_ = c.conn.Write(wctx, websocket.MessageText, payload)
			cancel()
		}
	}
}

func (c *client) handle(ctx context.Context, msg protocol.ClientMessage) {
	switch msg.Type {
	case protocol.TypeCreateRoom:
		c.createRoom(ctx)
	case protocol.TypeJoinRoom:
		c.joinRoom(ctx, msg.Data)
	default:
		c.command(ctx, msg)
	}
}

func (c *client) createRoom(ctx context.Context) {
	if c.room != nil {
		c.sendError(ctx, "already_in_room")
		return
	}

	reply := make(chan *room.Room, 1)
	c.hub.Inbox() <- hub.CreateRoom{HostID: c.id, HostOut: c.out, Reply: reply}
	rm := <-reply
	if rm == nil {
		c.sendError(ctx, "internal")
		return
	}

	c.room, c.role = rm, roleHost
	c.reg.Bind(string(c.id), rm.Code(), string(roleHost))
	c.write(ctx, protocol.TypeRoomCreated, protocol.RoomCreated{Code: rm.Code()})
}

func (c *client) joinRoom(ctx context.Context, data json.RawMessage) {
	if c.room != nil {
		c.sendError(ctx, "already_in_room")
		return
	}

	var body protocol.JoinRoom
	if err := json.Unmarshal(data, &body); err != nil {
		c.sendError(ctx, "invalid_payload")
		return
	}

	reply := make(chan *room.Room, 1)
	c.hub.Inbox() <- hub.GetRoom{Code: strings.ToUpper(strings.TrimSpace(body.Code)), Reply: reply}
	rm := <-reply
	if rm == nil {
		c.sendError(ctx, "room_not_found")
		return
	}

	errc := make(chan error, 1)
	join := room.Join{
		Player: engine.Player{ID: c.id, Name: body.Name},
		Outbox: c.out,
		Reply:  errc,
	}
	if !rm.Send(join) {
		c.sendError(ctx, "room_not_found")
		return
	}
	select {
	case err := <-errc:
		if err != nil {
			c.sendError(ctx, errorCode(err))
			return
		}
	case <-rm.Done():
		c.sendError(ctx, "room_not_found")
		return
	}

	c.room, c.role = rm, rolePlayer
	c.reg.Bind(string(c.id), rm.Code(), string(rolePlayer))
}

func (c *client) command(ctx context.Context, msg protocol.ClientMessage) {
	if c.room == nil {
		c.sendError(ctx, "not_in_room")
		return
	}

	cmd, code := toCommand(c.id, msg)
	if code != "" {
		c.sendError(ctx, code)
		return
	}

	errc := make(chan error, 1)
	if !c.room.Send(room.FromClient{Sender: c.id, Cmd: cmd, Reply: errc}) {
		c.sendError(ctx, "room_not_found")
		return
	}
	select {
	case err := <-errc:
		if err != nil {
			c.sendError(ctx, errorCode(err))
		}
	case <-c.room.Done():
		c.sendError(ctx, "room_not_found")
	}
}

func toCommand(sender engine.PlayerID, msg protocol.ClientMessage) (engine.Command, string) {
	switch msg.Type {
	case protocol.TypeHostStartGame:
		return engine.Command{Type: engine.CmdStart, Sender: sender}, ""

	case protocol.TypeSubmitHint:
		var body protocol.SubmitHint
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			return engine.Command{}, "invalid_payload"
		}
		return engine.Command{Type: engine.CmdSubmitHint, Sender: sender, Text: body.Hint}, ""

	case protocol.TypeAccuse:
		var body protocol.Accuse
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			return engine.Command{}, "invalid_payload"
		}
		return engine.Command{Type: engine.CmdAccuse, Sender: sender, Target: engine.PlayerID(body.AccusedID)}, ""

	case protocol.TypeVote:
		var body protocol.Vote
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			return engine.Command{}, "invalid_payload"
		}
		return engine.Command{Type: engine.CmdVote, Sender: sender, Target: engine.PlayerID(body.TargetID)}, ""

	case protocol.TypeChameleonGuess:
		var body protocol.ChameleonGuess
		if err := json.Unmarshal(msg.Data, &body); err != nil {
			return engine.Command{}, "invalid_payload"
		}
		return engine.Command{Type: engine.CmdGuess, Sender: sender, Text: body.Guess}, ""

	case protocol.TypeHostReset:
		return engine.Command{Type: engine.CmdReset, Sender: sender}, ""

	default:
		return engine.Command{}, "unknown_type"
	}
}

// leaveRoom is the one cleanup path, shared by graceful close, read error
// and liveness kill. Host departure cascades into room teardown.
func (c *client) leaveRoom() {
	if c.room == nil {
		return
	}
	switch c.role {
	case roleHost:
		c.room.Send(room.HostLeave{})
	case rolePlayer:
		c.room.Send(room.Leave{PlayerID: c.id})
	}
	c.room = nil
}

// write replies directly on the connection, bypassing the room-owned
// outbox; used for connect/create acks and error replies only.
func (c *client) write(ctx context.Context, msgType string, data any) {
	payload, err := protocol.Marshal(msgType, data)
	if err != nil {
		c.log.Error("marshal reply", zap.String("type", msgType), zap.Error(err))
		return
	}
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = c.conn.Write(wctx, websocket.MessageText, payload)
}

func (c *client) sendError(ctx context.Context, code string) {
	c.write(ctx, protocol.TypeError, protocol.ErrorData{Code: code})
}

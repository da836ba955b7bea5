// Package hub owns the process-wide room table: one actor that creates,
// resolves and removes rooms, so code lookup and insert never race.
package hub

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/chameleongame/backend/internal/engine"
	"github.com/chameleongame/backend/internal/room"
)

type HubMsg interface{ isHubMsg() }

// CreateRoom allocates a fresh unique code, spawns the room actor with the
// caller as host, and replies with the room (nil on failure).
type CreateRoom struct {
	HostID  engine.PlayerID
	HostOut chan []byte
	Reply   chan *room.Room
}

type GetRoom struct {
	Code  string
	Reply chan *room.Room // may be nil
}

type RemoveRoom struct{ Code string }

type ShutdownHub struct{}

func (CreateRoom) isHubMsg()  {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

type Hub struct {
	inbox  chan HubMsg
	rooms  map[string]*room.Room
	seed   func() int64
	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(parent context.Context, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:  make(chan HubMsg, 64),
		rooms:  make(map[string]*room.Room),
		seed:   func() int64 { return time.Now().UnixNano() },
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateRoom:
				code, err := h.newCode()
				if err != nil {
					h.log.Error("generate room code", zap.Error(err))
					msg.Reply <- nil
					break
				}
				rm := room.New(h.ctx, code, msg.HostID, msg.HostOut,
					rand.New(rand.NewSource(h.seed())), h.removeFn(code), h.log)
				h.rooms[code] = rm
				h.log.Info("room created", zap.String("room", code))
				msg.Reply <- rm

			case GetRoom:
				msg.Reply <- h.rooms[msg.Code]

			case RemoveRoom:
				if _, ok := h.rooms[msg.Code]; ok {
					delete(h.rooms, msg.Code)
					h.log.Info("room removed", zap.String("room", msg.Code))
				}

			case ShutdownHub:
				for _, rm := range h.rooms {
					rm.Send(room.Shutdown{})
				}
				clear(h.rooms)
				h.cancel()
			}
		}
	}
}

// newCode resamples until the candidate misses the live key set. Codes are
// reusable once their room is gone.
func (h *Hub) newCode() (string, error) {
	for {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		if _, taken := h.rooms[code]; !taken {
			return code, nil
		}
		h.log.Debug("room code collision, resampling", zap.String("code", code))
	}
}

// removeFn is handed to the room so a closing room unlinks itself from the
// store without ever owning it.
func (h *Hub) removeFn(code string) func() {
	return func() {
		select {
		case h.inbox <- RemoveRoom{Code: code}:
		case <-h.ctx.Done():
		}
	}
}

package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type tracked struct {
	conn  *websocket.Conn
	alive bool
	room  string
	role  string
}

// Registry hands out ephemeral identities for live connections, remembers
// which room and role each one holds, and runs the liveness sweep that
// reaps unresponsive ones.
type Registry struct {
	mu    sync.Mutex
	conns map[string]*tracked
	log   *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		conns: make(map[string]*tracked),
		log:   log,
	}
}

func (r *Registry) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.conns[id] = &tracked{conn: conn, alive: true}
	r.mu.Unlock()
	return id
}

// Bind records the room and role a connection acquired; both are immutable
// for the connection's tenure.
func (r *Registry) Bind(id, room, role string) {
	r.mu.Lock()
	if tc, ok := r.conns[id]; ok {
		tc.room, tc.role = room, role
	}
	r.mu.Unlock()
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.conns, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Run sweeps on a fixed period until ctx is done. A connection that never
// acked the previous probe gets force-closed, which fails its read loop and
// funnels it through the exact same cleanup as a graceful close. Everyone
// else has the flag cleared and a fresh probe sent; the pong sets it back.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx, interval)
		}
	}
}

func (r *Registry) sweep(ctx context.Context, interval time.Duration) {
	r.mu.Lock()
	var dead, probing []*tracked
	var deadIDs []string
	for id, tc := range r.conns {
		if tc.alive {
			tc.alive = false
			probing = append(probing, tc)
		} else {
			dead = append(dead, tc)
			deadIDs = append(deadIDs, id)
		}
	}
	r.mu.Unlock()

	for i, tc := range dead {
		r.log.Info("liveness timeout, dropping connection",
			zap.String("conn", deadIDs[i]),
			zap.String("room", tc.room),
			zap.String("role", tc.role))
		_ = tc.conn.Close(websocket.StatusPolicyViolation, "liveness timeout")
	}

	for _, tc := range probing {
		go func(tc *tracked) {
			pctx, cancel := context.WithTimeout(ctx, interval)
			defer cancel()
			if tc.conn.Ping(pctx) == nil {
				r.mu.Lock()
				tc.alive = true
				r.mu.Unlock()
			}
		}(tc)
	}
}

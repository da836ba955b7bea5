package room

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/chameleongame/backend/internal/engine"
	"github.com/chameleongame/backend/internal/protocol"
)

// ErrNotHost gates the host-only actions (start, reset); the engine itself
// has no host concept.
var ErrNotHost = errors.New("host only action")

// Room is the single owner of one game's state. Everything goes through the
// inbox, so every guard check and its mutation are atomic.
type Room struct {
	code      string
	inbox     chan Msg
	state     engine.State
	hostID    engine.PlayerID
	hostOut   chan []byte
	clients   map[engine.PlayerID]chan []byte
	createdAt time.Time
	rng       *rand.Rand
	remove    func() // unlinks this room from the store, exactly once
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(parent context.Context, code string, hostID engine.PlayerID, hostOut chan []byte, rng *rand.Rand, remove func(), log *zap.Logger) *Room {
	ctx, cancel := context.WithCancel(parent)
	r := &Room{
		code:      code,
		inbox:     make(chan Msg, 64),
		state:     engine.NewState(),
		hostID:    hostID,
		hostOut:   hostOut,
		clients:   make(map[engine.PlayerID]chan []byte),
		createdAt: time.Now(),
		rng:       rng,
		remove:    remove,
		log:       log.With(zap.String("room", code)),
		ctx:       ctx,
		cancel:    cancel,
	}
	go r.loop()
	return r
}

func (r *Room) Code() string { return r.code }

// Done closes once the actor has stopped accepting messages.
func (r *Room) Done() <-chan struct{} { return r.ctx.Done() }

// Send queues m unless the actor has already stopped. Callers must not
// block forever on a reply channel without also selecting on Done.
func (r *Room) Send(m Msg) bool {
	select {
	case r.inbox <- m:
		return true
	case <-r.ctx.Done():
		return false
	}
}

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown(false)
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- r.handleJoin(msg)

			case Leave:
				r.handleLeave(msg.PlayerID)

			case HostLeave:
				r.log.Info("host disconnected, closing room")
				r.shutdown(true)
				return

			case FromClient:
				msg.Reply <- r.handleCommand(msg.Sender, msg.Cmd)

			case GetState:
				msg.Reply <- View{
					Code:       r.code,
					Phase:      r.state.Phase,
					NumPlayers: len(r.state.Players),
					NumClients: len(r.clients),
					State:      r.state,
				}

			case Shutdown:
				r.shutdown(true)
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) error {
	cmd := engine.Command{Type: engine.CmdJoin, Sender: msg.Player.ID, Name: msg.Player.Name}
	events, next, err := engine.Apply(r.state, cmd, r.rng)
	if err != nil {
		return err
	}
	r.state = next
	r.clients[msg.Player.ID] = msg.Outbox
	r.dispatch(events)
	return nil
}

func (r *Room) handleLeave(id engine.PlayerID) {
	delete(r.clients, id)
	events, next, err := engine.Apply(r.state, engine.Command{Type: engine.CmdRemovePlayer, Sender: id}, r.rng)
	if err != nil {
		return
	}
	r.state = next
	r.dispatch(events)
}

func (r *Room) handleCommand(sender engine.PlayerID, cmd engine.Command) error {
	switch cmd.Type {
	case engine.CmdStart, engine.CmdReset:
		if sender != r.hostID {
			return ErrNotHost
		}
	}
	events, next, err := engine.Apply(r.state, cmd, r.rng)
	if err != nil {
		r.log.Debug("rejected action",
			zap.String("cmd", string(cmd.Type)),
			zap.String("sender", string(sender)),
			zap.Error(err))
		return err
	}
	r.state = next
	r.dispatch(events)
	return nil
}

// dispatch maps engine events onto wire messages.
func (r *Room) dispatch(events []engine.Event) {
	for _, ev := range events {
		switch ev.Type {
		case engine.EvtPlayerJoined, engine.EvtPlayerLeft, engine.EvtRoomReset:
			r.broadcast(protocol.TypeRoomUpdate, r.roomUpdate())

		case engine.EvtRoundStarted:
			r.sendRoundStart()

		case engine.EvtHintProgress:
			r.broadcast(protocol.TypeHintProgress, protocol.Progress{Submitted: ev.Submitted, Total: ev.Total})

		case engine.EvtHintsRevealed:
			hints := make(map[string]string, len(ev.Hints))
			for id, hint := range ev.Hints {
				hints[string(id)] = hint
			}
			r.broadcast(protocol.TypeHintsRevealed, protocol.HintsRevealed{Hints: hints})

		case engine.EvtVotingStarted:
			r.broadcast(protocol.TypeVotingStart, protocol.VotingStart{AccusedID: string(ev.Accused)})

		case engine.EvtVoteProgress:
			r.broadcast(protocol.TypeVoteProgress, protocol.Progress{Submitted: ev.Submitted, Total: ev.Total})

		case engine.EvtChameleonCaught:
			r.broadcast(protocol.TypeChameleonCaught, protocol.ChameleonCaught{
				AccusedID:   string(ev.Accused),
				ChameleonID: string(r.state.ChameleonID),
			})

		case engine.EvtRoundResolved:
			o := ev.Outcome
			r.broadcast(protocol.TypeRoundResult, protocol.RoundResult{
				Success:     o.Success,
				SecretWord:  o.SecretWord,
				ChameleonID: string(o.ChameleonID),
				AccusedID:   string(o.Accused),
				Reason:      o.Reason,
			})
		}
	}
}

func (r *Room) roomUpdate() protocol.RoomUpdate {
	players := make([]protocol.PlayerInfo, 0, len(r.state.Players))
	for _, p := range r.state.Players {
		players = append(players, protocol.PlayerInfo{ID: string(p.ID), Name: p.Name})
	}
	update := protocol.RoomUpdate{
		Code:        r.code,
		Players:     players,
		State:       string(r.state.Phase),
		PlayerCount: len(players),
	}
	if r.state.Category != nil {
		update.Category = r.state.Category.Name
	}
	return update
}

// sendRoundStart delivers the role-asymmetric round-start payloads: the
// chameleon learns only its role, everyone else sees the grid and the
// coordinate, the host additionally learns who the chameleon is.
func (r *Room) sendRoundStart() {
	st := r.state
	coord := protocol.Coord{Row: st.Coord.Row, Col: st.Coord.Col}
	grid := st.Category.Grid

	for id, out := range r.clients {
		if id == st.ChameleonID {
			r.send(out, protocol.TypeGameStartPlayer, protocol.GameStartPlayer{Role: protocol.RoleChameleon})
			continue
		}
		r.send(out, protocol.TypeGameStartPlayer, protocol.GameStartPlayer{
			Role:     protocol.RolePlayer,
			Coord:    &coord,
			Grid:     &grid,
			Category: st.Category.Name,
		})
	}

	if r.hostOut != nil {
		r.send(r.hostOut, protocol.TypeGameStartHost, protocol.GameStartHost{
			Coord:       coord,
			Grid:        grid,
			Category:    st.Category.Name,
			ChameleonID: string(st.ChameleonID),
		})
	}
}

// broadcast serializes the envelope once and delivers the identical bytes
// to the host and every player outbox. A full outbox means the consumer
// stopped draining; players get dropped like a disconnect, the host is
// skipped (dropping the host would tear the room down).
func (r *Room) broadcast(msgType string, data any) {
	payload, err := protocol.Marshal(msgType, data)
	if err != nil {
		r.log.Error("marshal broadcast", zap.String("type", msgType), zap.Error(err))
		return
	}

	if r.hostOut != nil {
		select {
		case r.hostOut <- payload:
		default:
		}
	}

	for id, ch := range r.clients {
		select {
		case ch <- payload:
		default:
			close(ch)
			delete(r.clients, id)
		}
	}
}

// send is the single-recipient path for role-asymmetric payloads; never
// confuse it with broadcast.
func (r *Room) send(out chan []byte, msgType string, data any) {
	payload, err := protocol.Marshal(msgType, data)
	if err != nil {
		r.log.Error("marshal send", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case out <- payload:
	default:
	}
}

func (r *Room) shutdown(notify bool) {
	if notify {
		r.broadcast(protocol.TypeRoomClosed, struct{}{})
	}
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	if r.hostOut != nil {
		close(r.hostOut)
		r.hostOut = nil
	}
	if r.remove != nil {
		r.remove()
		r.remove = nil
	}
	r.cancel()
}

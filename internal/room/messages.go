package room

import "github.com/chameleongame/backend/internal/engine"

type Msg interface{ isRoomMsg() }

// Join registers a player connection and its outbox. Reply carries the
// engine's verdict; on error the outbox is not registered.
type Join struct {
	Player engine.Player
	Outbox chan []byte
	Reply  chan error
}

type Leave struct{ PlayerID engine.PlayerID }

// HostLeave is the destructive, cascading close: every remaining
// participant is told room_closed and the room removes itself.
type HostLeave struct{}

type FromClient struct {
	Sender engine.PlayerID
	Cmd    engine.Command
	Reply  chan error
}

// GetState is test-only: reflect internal state without data races.
type GetState struct{ Reply chan View }

type Shutdown struct{}

func (Join) isRoomMsg()       {}
func (Leave) isRoomMsg()      {}
func (HostLeave) isRoomMsg()  {}
func (FromClient) isRoomMsg() {}
func (GetState) isRoomMsg()   {}
func (Shutdown) isRoomMsg()   {}

type View struct {
	Code       string
	Phase      engine.Phase
	NumPlayers int
	NumClients int
	State      engine.State
}

// Package protocol defines the JSON wire format. Every frame, both
// directions, is an envelope {"type": string, "data": object}.
package protocol

import "encoding/json"

// Client -> server message types.
const (
	TypeCreateRoom     = "create_room"
	TypeJoinRoom       = "join_room"
	TypeHostStartGame  = "host_start_game"
	TypeSubmitHint     = "submit_hint"
	TypeAccuse         = "accuse"
	TypeVote           = "vote"
	TypeChameleonGuess = "chameleon_guess"
	TypeHostReset      = "host_reset"
)

// Server -> client message types.
const (
	TypeConnected       = "connected"
	TypeRoomCreated     = "room_created"
	TypeRoomUpdate      = "room_update"
	TypeGameStartPlayer = "game_start_player"
	TypeGameStartHost   = "game_start_host"
	TypeHintProgress    = "hint_progress"
	TypeHintsRevealed   = "hints_revealed"
	TypeVotingStart     = "voting_start"
	TypeVoteProgress    = "vote_progress"
	TypeChameleonCaught = "chameleon_caught"
	TypeRoundResult     = "round_result"
	TypeRoomClosed      = "room_closed"
	TypeError           = "error"
)

const (
	RolePlayer    = "player"
	RoleChameleon = "chameleon"
)

type ClientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ServerMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Marshal serializes one outbound envelope. Fan-out callers marshal once
// and deliver the identical bytes to every recipient.
func Marshal(msgType string, data any) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: msgType, Data: data})
}

// Client payloads.

type JoinRoom struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type SubmitHint struct {
	Hint string `json:"hint"`
}

type Accuse struct {
	AccusedID string `json:"accusedId"`
}

type Vote struct {
	TargetID string `json:"targetId"`
}

type ChameleonGuess struct {
	Guess string `json:"guess"`
}

// Server payloads.

type Connected struct {
	ID string `json:"id"`
}

type RoomCreated struct {
	Code string `json:"code"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomUpdate struct {
	Code        string       `json:"code"`
	Players     []PlayerInfo `json:"players"`
	State       string       `json:"state"`
	Category    string       `json:"category,omitempty"`
	PlayerCount int          `json:"playerCount"`
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GameStartPlayer is role-asymmetric: the chameleon gets only Role, every
// other player additionally gets the category, grid and coordinate.
type GameStartPlayer struct {
	Role     string        `json:"role"`
	Coord    *Coord        `json:"coord,omitempty"`
	Grid     *[4][4]string `json:"grid,omitempty"`
	Category string        `json:"category,omitempty"`
}

type GameStartHost struct {
	Coord       Coord        `json:"coord"`
	Grid        [4][4]string `json:"grid"`
	Category    string       `json:"category"`
	ChameleonID string       `json:"chameleonId"`
}

type Progress struct {
	Submitted int `json:"submitted"`
	Total     int `json:"total"`
}

type HintsRevealed struct {
	Hints map[string]string `json:"hints"`
}

type VotingStart struct {
	AccusedID string `json:"accusedId"`
}

type ChameleonCaught struct {
	AccusedID   string `json:"accusedId"`
	ChameleonID string `json:"chameleonId"`
}

type RoundResult struct {
	Success     bool   `json:"success"`
	SecretWord  string `json:"secretWord"`
	ChameleonID string `json:"chameleonId"`
	AccusedID   string `json:"accusedId,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type ErrorData struct {
	Code string `json:"code"`
}

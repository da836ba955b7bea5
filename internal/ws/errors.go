package ws

import (
	"errors"

	"github.com/chameleongame/backend/internal/engine"
	"github.com/chameleongame/backend/internal/room"
)

// errorCode maps engine/room rejections to the wire error codes. Every
// rejection is reported to the sender only; state is untouched.
func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrRoomFull):
		return "room_full"
	case errors.Is(err, engine.ErrGameInProgress):
		return "game_in_progress"
	case errors.Is(err, engine.ErrNotEnoughPlayers):
		return "not_enough_players"
	case errors.Is(err, engine.ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, engine.ErrNotChameleon):
		return "not_chameleon"
	case errors.Is(err, engine.ErrUnknownPlayer):
		return "not_in_room"
	case errors.Is(err, engine.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, engine.ErrInvalidHint):
		return "invalid_hint"
	case errors.Is(err, engine.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, room.ErrNotHost):
		return "not_host"
	default:
		return "invalid_payload"
	}
}

package engine

import "errors"

var ErrRoomFull = errors.New("room is full")
var ErrGameInProgress = errors.New("round already in progress")
var ErrNotEnoughPlayers = errors.New("not enough players")
var ErrWrongPhase = errors.New("action not valid in current phase")
var ErrNotChameleon = errors.New("only the chameleon may guess")
var ErrUnknownPlayer = errors.New("sender is not in the room")
var ErrInvalidName = errors.New("invalid display name")
var ErrInvalidHint = errors.New("invalid hint")
var ErrInvalidTarget = errors.New("target is not in the room")
var ErrUnsupportedCommand = errors.New("unsupported command")

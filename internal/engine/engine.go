package engine

import (
	"math/rand"
	"slices"
	"strings"
)

const (
	MaxPlayers = 8
	MinPlayers = 3
	MaxNameLen = 20
	MaxHintLen = 50
)

type PlayerID string

type Player struct {
	ID   PlayerID
	Name string
}

type Phase string

const (
	PhaseLobby      Phase = "lobby"
	PhaseHint       Phase = "hint"
	PhaseAccusation Phase = "accusation"
	PhaseVoting     Phase = "voting"
	PhaseGuess      Phase = "chameleon_guess"
	PhaseFinished   Phase = "finished"
)

type Coord struct {
	Row int
	Col int
}

type Accusation struct {
	Accuser PlayerID
	Accused PlayerID
}

type State struct {
	Phase       Phase
	Players     []Player // insertion order, significant
	Category    *Category
	Coord       Coord
	ChameleonID PlayerID
	Hints       map[PlayerID]string
	Votes       map[PlayerID]PlayerID
	Accusations []Accusation
}

type CommandType string

const (
	CmdJoin         CommandType = "Join"
	CmdStart        CommandType = "Start"
	CmdSubmitHint   CommandType = "SubmitHint"
	CmdAccuse       CommandType = "Accuse"
	CmdVote         CommandType = "Vote"
	CmdGuess        CommandType = "Guess"
	CmdReset        CommandType = "Reset"
	CmdRemovePlayer CommandType = "RemovePlayer"
)

type Command struct {
	Type   CommandType
	Sender PlayerID
	Name   string
	Target PlayerID
	Text   string
}

type EventType string

const (
	EvtPlayerJoined    EventType = "PlayerJoined"
	EvtPlayerLeft      EventType = "PlayerLeft"
	EvtRoundStarted    EventType = "RoundStarted"
	EvtHintProgress    EventType = "HintProgress"
	EvtHintsRevealed   EventType = "HintsRevealed"
	EvtVotingStarted   EventType = "VotingStarted"
	EvtVoteProgress    EventType = "VoteProgress"
	EvtChameleonCaught EventType = "ChameleonCaught"
	EvtRoundResolved   EventType = "RoundResolved"
	EvtRoomReset       EventType = "RoomReset"
)

const (
	ReasonNoConsensus      = "no_consensus"
	ReasonWrongAccusation  = "wrong_accusation"
	ReasonChameleonCaught  = "chameleon_caught"
	ReasonChameleonGuessed = "chameleon_guessed"
)

// Outcome is the final round result, delivered whole to every participant.
type Outcome struct {
	Success     bool // true when the group wins
	SecretWord  string
	ChameleonID PlayerID
	Accused     PlayerID
	Reason      string
}

type Event struct {
	Type      EventType
	Player    PlayerID
	Accused   PlayerID
	Submitted int
	Total     int
	Hints     map[PlayerID]string
	Outcome   *Outcome
}

// Apply validates cmd against the current phase and returns the events to
// fan out plus the next state. On error the returned state is s unchanged.
// Host-only gating (Start/Reset) is the caller's job; the engine has no
// notion of a host.
func Apply(s State, cmd Command, rng *rand.Rand) ([]Event, State, error) {
	ns := s

	switch cmd.Type {
	case CmdJoin:
		if s.Phase != PhaseLobby {
			return nil, s, ErrGameInProgress
		}
		if len(s.Players) >= MaxPlayers {
			return nil, s, ErrRoomFull
		}
		name := strings.TrimSpace(cmd.Name)
		if name == "" || len(name) > MaxNameLen {
			return nil, s, ErrInvalidName
		}
		ns.Players = append(slices.Clone(s.Players), Player{ID: cmd.Sender, Name: name})
		return []Event{{Type: EvtPlayerJoined, Player: cmd.Sender}}, ns, nil

	case CmdStart:
		if s.Phase != PhaseLobby {
			return nil, s, ErrWrongPhase
		}
		if len(s.Players) < MinPlayers {
			return nil, s, ErrNotEnoughPlayers
		}
		ns.Category = &Categories[rng.Intn(len(Categories))]
		ns.Coord = Coord{Row: rng.Intn(GridSize), Col: rng.Intn(GridSize)}
		ns.ChameleonID = s.Players[rng.Intn(len(s.Players))].ID
		ns.Hints = make(map[PlayerID]string)
		ns.Votes = make(map[PlayerID]PlayerID)
		ns.Accusations = nil
		ns.Phase = PhaseHint
		return []Event{{Type: EvtRoundStarted}}, ns, nil

	case CmdSubmitHint:
		if s.Phase != PhaseHint {
			return nil, s, ErrWrongPhase
		}
		if !s.HasPlayer(cmd.Sender) {
			return nil, s, ErrUnknownPlayer
		}
		hint := strings.TrimSpace(cmd.Text)
		if hint == "" || len(hint) > MaxHintLen {
			return nil, s, ErrInvalidHint
		}
		ns.Hints[cmd.Sender] = hint
		events := []Event{{Type: EvtHintProgress, Submitted: ns.liveHints(), Total: len(ns.Players)}}
		if ns.liveHints() == len(ns.Players) {
			ns.Phase = PhaseAccusation
			events = append(events, Event{Type: EvtHintsRevealed, Hints: ns.revealedHints()})
		}
		return events, ns, nil

	case CmdAccuse:
		if s.Phase != PhaseAccusation {
			return nil, s, ErrWrongPhase
		}
		if !s.HasPlayer(cmd.Sender) {
			return nil, s, ErrUnknownPlayer
		}
		if !s.HasPlayer(cmd.Target) {
			return nil, s, ErrInvalidTarget
		}
		ns.Accusations = append(slices.Clone(s.Accusations), Accusation{Accuser: cmd.Sender, Accused: cmd.Target})
		ns.Votes = make(map[PlayerID]PlayerID)
		ns.Phase = PhaseVoting
		return []Event{{Type: EvtVotingStarted, Accused: cmd.Target}}, ns, nil

	case CmdVote:
		if s.Phase != PhaseVoting {
			return nil, s, ErrWrongPhase
		}
		if !s.HasPlayer(cmd.Sender) {
			return nil, s, ErrUnknownPlayer
		}
		if !s.HasPlayer(cmd.Target) {
			return nil, s, ErrInvalidTarget
		}
		ns.Votes[cmd.Sender] = cmd.Target
		events := []Event{{Type: EvtVoteProgress, Submitted: ns.liveVotes(), Total: len(ns.Players)}}
		if ns.liveVotes() == len(ns.Players) {
			var resolved []Event
			ns, resolved = resolveVotes(ns)
			events = append(events, resolved...)
		}
		return events, ns, nil

	case CmdGuess:
		if s.Phase != PhaseGuess {
			return nil, s, ErrWrongPhase
		}
		if cmd.Sender != s.ChameleonID {
			return nil, s, ErrNotChameleon
		}
		secret := s.SecretWord()
		outcome := &Outcome{
			SecretWord:  secret,
			ChameleonID: s.ChameleonID,
			Accused:     s.ChameleonID,
		}
		if strings.EqualFold(strings.TrimSpace(cmd.Text), secret) {
			// Caught, but the guess flips the round back to a chameleon win.
			outcome.Success = false
			outcome.Reason = ReasonChameleonGuessed
		} else {
			outcome.Success = true
			outcome.Reason = ReasonChameleonCaught
		}
		ns.Phase = PhaseFinished
		return []Event{{Type: EvtRoundResolved, Outcome: outcome}}, ns, nil

	case CmdReset:
		ns.Category = nil
		ns.Coord = Coord{}
		ns.ChameleonID = ""
		ns.Hints = make(map[PlayerID]string)
		ns.Votes = make(map[PlayerID]PlayerID)
		ns.Accusations = nil
		ns.Phase = PhaseLobby
		return []Event{{Type: EvtRoomReset}}, ns, nil

	case CmdRemovePlayer:
		idx := slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == cmd.Sender })
		if idx < 0 {
			return nil, s, ErrUnknownPlayer
		}
		// Entries the leaver left behind in Hints/Votes/Accusations stay put
		// and become inert: live counts and the tally skip removed identities.
		ns.Players = slices.Delete(slices.Clone(s.Players), idx, idx+1)
		return []Event{{Type: EvtPlayerLeft, Player: cmd.Sender}}, ns, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

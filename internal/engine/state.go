package engine

import "slices"

func NewState() State {
	return State{
		Phase: PhaseLobby,
		Hints: make(map[PlayerID]string),
		Votes: make(map[PlayerID]PlayerID),
	}
}

func (s State) HasPlayer(id PlayerID) bool {
	return slices.ContainsFunc(s.Players, func(p Player) bool { return p.ID == id })
}

// SecretWord is the grid cell at the round's coordinate, "" outside a round.
func (s State) SecretWord() string {
	if s.Category == nil {
		return ""
	}
	return s.Category.Grid[s.Coord.Row][s.Coord.Col]
}

// liveHints counts hints from players still in the room, so entries left
// behind by a disconnect never satisfy the completion threshold.
func (s State) liveHints() int {
	n := 0
	for id := range s.Hints {
		if s.HasPlayer(id) {
			n++
		}
	}
	return n
}

func (s State) liveVotes() int {
	n := 0
	for id := range s.Votes {
		if s.HasPlayer(id) {
			n++
		}
	}
	return n
}

func (s State) revealedHints() map[PlayerID]string {
	hints := make(map[PlayerID]string, len(s.Hints))
	for id, hint := range s.Hints {
		if s.HasPlayer(id) {
			hints[id] = hint
		}
	}
	return hints
}

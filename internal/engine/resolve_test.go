package engine

import (
	"errors"
	"testing"
)

func votingState(n int, chameleon PlayerID) State {
	s := hintState(n)
	s.Phase = PhaseVoting
	s.ChameleonID = chameleon
	return s
}

func castVotes(t *testing.T, s State, votes map[PlayerID]PlayerID) ([]Event, State) {
	t.Helper()
	var events []Event
	for _, p := range s.Players {
		target, ok := votes[p.ID]
		if !ok {
			continue
		}
		var err error
		events, s, err = Apply(s, Command{Type: CmdVote, Sender: p.ID, Target: target}, testRNG())
		if err != nil {
			t.Fatalf("vote from %s: %v", p.ID, err)
		}
	}
	return events, s
}

func lastOutcome(t *testing.T, events []Event) *Outcome {
	t.Helper()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == EvtRoundResolved {
			return events[i].Outcome
		}
	}
	t.Fatalf("no RoundResolved event in %+v", events)
	return nil
}

func TestVotePhaseGating(t *testing.T) {
	s := hintState(3)
	_, _, err := Apply(s, Command{Type: CmdVote, Sender: "p1", Target: "p2"}, testRNG())
	if !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("want ErrWrongPhase, got %v", err)
	}
}

func TestVoteResubmissionOverwrites(t *testing.T) {
	s := votingState(3, "p1")

	_, s, err := Apply(s, Command{Type: CmdVote, Sender: "p1", Target: "p2"}, testRNG())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, s, err = Apply(s, Command{Type: CmdVote, Sender: "p1", Target: "p3"}, testRNG())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(s.Votes) != 1 || s.Votes["p1"] != "p3" {
		t.Fatalf("revote did not overwrite: %+v", s.Votes)
	}
	if s.Phase != PhaseVoting {
		t.Fatalf("revote advanced phase: %v", s.Phase)
	}
}

// A 2-2 split with no recorded accusation is no consensus: the chameleon
// survives automatically, whatever the submission order.
func TestTieBreakNoConsensus(t *testing.T) {
	orders := [][]PlayerID{
		{"p1", "p2", "p3", "p4"},
		{"p4", "p3", "p2", "p1"},
		{"p2", "p4", "p1", "p3"},
	}
	votes := map[PlayerID]PlayerID{"p1": "p3", "p2": "p3", "p3": "p4", "p4": "p4"}

	for _, order := range orders {
		s := votingState(4, "p3")
		var events []Event
		for _, voter := range order {
			var err error
			events, s, err = Apply(s, Command{Type: CmdVote, Sender: voter, Target: votes[voter]}, testRNG())
			if err != nil {
				t.Fatalf("vote from %s: %v", voter, err)
			}
		}
		o := lastOutcome(t, events)
		if o.Success || o.Reason != ReasonNoConsensus {
			t.Fatalf("order %v: want no consensus, got %+v", order, o)
		}
		if o.Accused != "" {
			t.Fatalf("order %v: no-consensus outcome names an accused: %+v", order, o)
		}
		if s.Phase != PhaseFinished {
			t.Fatalf("order %v: want finished, got %v", order, s.Phase)
		}
	}
}

func TestUniqueWinnerCatchesChameleon(t *testing.T) {
	s := votingState(4, "p3")
	events, s := castVotes(t, s, map[PlayerID]PlayerID{
		"p1": "p3", "p2": "p3", "p3": "p1", "p4": "p3",
	})
	if s.Phase != PhaseGuess {
		t.Fatalf("want chameleon_guess, got %v", s.Phase)
	}
	last := events[len(events)-1]
	if last.Type != EvtChameleonCaught || last.Accused != "p3" {
		t.Fatalf("bad caught event: %+v", last)
	}
}

func TestUniqueWinnerWrongAccusation(t *testing.T) {
	s := votingState(4, "p3")
	events, s := castVotes(t, s, map[PlayerID]PlayerID{
		"p1": "p2", "p2": "p1", "p3": "p2", "p4": "p2",
	})
	o := lastOutcome(t, events)
	if o.Success || o.Reason != ReasonWrongAccusation || o.Accused != "p2" {
		t.Fatalf("want wrong accusation of p2, got %+v", o)
	}
	if o.ChameleonID != "p3" || o.SecretWord != "Lemon" {
		t.Fatalf("outcome missing reveal data: %+v", o)
	}
	if s.Phase != PhaseFinished {
		t.Fatalf("want finished, got %v", s.Phase)
	}
}

// When an accusation was recorded, its first target wins resolution even
// against a unanimous tally for someone else.
func TestAccusationTakesPrecedenceOverTally(t *testing.T) {
	s := votingState(4, "p3")
	s.Accusations = []Accusation{{Accuser: "p1", Accused: "p3"}}

	_, s = castVotes(t, s, map[PlayerID]PlayerID{
		"p1": "p2", "p2": "p2", "p3": "p2", "p4": "p2",
	})
	if s.Phase != PhaseGuess {
		t.Fatalf("accusation target was not resolved, phase %v", s.Phase)
	}
}

// Votes left behind by a removed player are excluded from the tally.
func TestStaleVoteExcludedFromTally(t *testing.T) {
	s := votingState(4, "p2")

	_, s, err := Apply(s, Command{Type: CmdVote, Sender: "p4", Target: "p1"}, testRNG())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, s, err = Apply(s, Command{Type: CmdRemovePlayer, Sender: "p4"}, testRNG())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	// Remaining three vote; p4's stale vote for p1 must not matter.
	_, s = castVotes(t, s, map[PlayerID]PlayerID{
		"p1": "p2", "p2": "p1", "p3": "p2",
	})
	if s.Phase != PhaseGuess {
		t.Fatalf("want chameleon_guess, got %v", s.Phase)
	}
}

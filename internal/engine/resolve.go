package engine

// resolveVotes finalizes a round once every current player has voted.
//
// The accused identity is the first recorded accusation's target when one
// exists; otherwise the unique tally winner, or nobody on a tie. No
// consensus means the chameleon survives automatically.
func resolveVotes(s State) (State, []Event) {
	accused := accusedForResolution(s)

	if accused == "" {
		s.Phase = PhaseFinished
		return s, []Event{{Type: EvtRoundResolved, Outcome: &Outcome{
			Success:     false,
			SecretWord:  s.SecretWord(),
			ChameleonID: s.ChameleonID,
			Reason:      ReasonNoConsensus,
		}}}
	}

	if accused == s.ChameleonID {
		// Caught: the chameleon gets one shot at the secret word.
		s.Phase = PhaseGuess
		return s, []Event{{Type: EvtChameleonCaught, Accused: accused}}
	}

	s.Phase = PhaseFinished
	return s, []Event{{Type: EvtRoundResolved, Outcome: &Outcome{
		Success:     false,
		SecretWord:  s.SecretWord(),
		ChameleonID: s.ChameleonID,
		Accused:     accused,
		Reason:      ReasonWrongAccusation,
	}}}
}

func accusedForResolution(s State) PlayerID {
	if len(s.Accusations) > 0 {
		return s.Accusations[0].Accused
	}

	tally := make(map[PlayerID]int)
	for voter, target := range s.Votes {
		if s.HasPlayer(voter) {
			tally[target]++
		}
	}

	max := 0
	for _, n := range tally {
		if n > max {
			max = n
		}
	}

	var winners []PlayerID
	for id, n := range tally {
		if n == max {
			winners = append(winners, id)
		}
	}
	if len(winners) == 1 {
		return winners[0]
	}
	return ""
}

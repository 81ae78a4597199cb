package domain

// ResolveOutcome maps a finalized score to a market outcome. Non-final scores
// are not decidable and yield OutcomeNone. YES means the home side won; the
// mapping is fixed platform-wide (see Outcome).
func ResolveOutcome(score Score) Outcome {
	if !score.Final() {
		return OutcomeNone
	}
	switch {
	case score.HomeScore > score.AwayScore:
		return OutcomeYes
	case score.AwayScore > score.HomeScore:
		return OutcomeNo
	default:
		return OutcomeDraw
	}
}

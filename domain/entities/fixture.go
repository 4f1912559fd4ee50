package entities

// Fixture is the snapshot of a match as reported by the sports-data provider
type Fixture struct {
	ID           int64
	HomeGoals    int
	AwayGoals    int
	IsFinal      bool
	WageringOpen bool
}

// HomeWon returns true if the home side won the fixture
func (f *Fixture) HomeWon() bool {
	return f.HomeGoals > f.AwayGoals
}

// AwayWon returns true if the away side won the fixture
func (f *Fixture) AwayWon() bool {
	return f.AwayGoals > f.HomeGoals
}

// IsDraw returns true if the fixture ended level
func (f *Fixture) IsDraw() bool {
	return f.HomeGoals == f.AwayGoals
}

// WinningSelection returns the match-winner selection that the final score produced
func (f *Fixture) WinningSelection() string {
	switch {
	case f.HomeWon():
		return SelectionHome
	case f.AwayWon():
		return SelectionAway
	default:
		return SelectionDraw
	}
}

// BothTeamsScored returns true if both sides scored at least once
func (f *Fixture) BothTeamsScored() bool {
	return f.HomeGoals > 0 && f.AwayGoals > 0
}

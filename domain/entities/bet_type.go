package entities

// BetType identifies the market a wager is placed on
type BetType string

const (
	BetTypeMatchWinner      BetType = "match_winner"
	BetTypeBothTeamsToScore BetType = "both_teams_to_score"
)

// Match winner selections
const (
	SelectionHome = "home"
	SelectionDraw = "draw"
	SelectionAway = "away"
)

// Both teams to score selections
const (
	SelectionYes = "yes"
	SelectionNo  = "no"
)

// betTypeOutcomes declares the valid selections per bet type
var betTypeOutcomes = map[BetType][]string{
	BetTypeMatchWinner:      {SelectionHome, SelectionDraw, SelectionAway},
	BetTypeBothTeamsToScore: {SelectionYes, SelectionNo},
}

// IsValid returns true if the bet type is known
func (b BetType) IsValid() bool {
	_, ok := betTypeOutcomes[b]
	return ok
}

// Outcomes returns the declared selection set for the bet type
func (b BetType) Outcomes() []string {
	return betTypeOutcomes[b]
}

// HasSelection returns true if the selection is a member of the bet type's outcome set
func (b BetType) HasSelection(selection string) bool {
	for _, s := range betTypeOutcomes[b] {
		if s == selection {
			return true
		}
	}
	return false
}

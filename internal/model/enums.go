package model

// Position is a player's nominal field position.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"

	// PositionLegacySubstitute is a deprecated value from old saved rosters
	// where "substitute" was modeled as a position. Load-time migration
	// rewrites it to {PositionForward, IsSubstitute: true}.
	PositionLegacySubstitute Position = "Substitute (SUB)"
)

// Abbreviation returns the short form used in compact displays.
func (p Position) Abbreviation() string {
	switch p {
	case PositionGoalkeeper:
		return "GK"
	case PositionDefender:
		return "DEF"
	case PositionMidfielder:
		return "MID"
	case PositionForward:
		return "FWD"
	case PositionLegacySubstitute:
		return "SUB"
	default:
		return string(p)
	}
}

// Valid reports whether p is one of the current (non-legacy) positions.
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	default:
		return false
	}
}

// TeamFormat is the side size the team plays, which caps the starting lineup.
type TeamFormat string

const (
	FormatFiveVFive     TeamFormat = "5v5"
	FormatSevenVSeven   TeamFormat = "7v7"
	FormatElevenVEleven TeamFormat = "11v11"
)

// MaxPlayers returns the starting-lineup capacity for the format.
func (f TeamFormat) MaxPlayers() int {
	switch f {
	case FormatFiveVFive:
		return 5
	case FormatSevenVSeven:
		return 7
	default:
		return 11
	}
}

// GameHalf identifies one of the two playing periods.
type GameHalf string

const (
	FirstHalf  GameHalf = "First Half"
	SecondHalf GameHalf = "Second Half"
)

// ShortName returns "1st" or "2nd" for scoreboard-style displays.
func (h GameHalf) ShortName() string {
	if h == SecondHalf {
		return "2nd"
	}
	return "1st"
}

// GameStatus tracks where a game sits in its lifecycle.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
)

// ActionType enumerates the discrete events the action log records.
// Raw values match the original save format so old histories decode.
type ActionType string

const (
	ActionTeamGoal           ActionType = "Team Goal"
	ActionTeamGoalWithAssist ActionType = "Team Goal (Assist)"
	ActionUnknownGoal        ActionType = "Unknown Goal"
	ActionOpponentGoal       ActionType = "Opponent Goal"
	ActionYellowCard         ActionType = "Yellow Card"
	ActionRedCard            ActionType = "Red Card"
	ActionSave               ActionType = "Save"
	ActionShot               ActionType = "Shot"
)

// IsOurGoal reports whether the action adds to our score.
func (t ActionType) IsOurGoal() bool {
	switch t {
	case ActionTeamGoal, ActionTeamGoalWithAssist, ActionUnknownGoal:
		return true
	default:
		return false
	}
}

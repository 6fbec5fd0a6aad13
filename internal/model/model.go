// Package model contains domain entities and enums used across layers.
// I keep it lean and focused on data shapes without behavior; the game
// engine and roster manager own all mutation rules.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Player is a roster entry. The game engine copies its fields at kickoff;
// it never holds a live reference back into the roster.
type Player struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Number       int       `json:"number"`
	Position     Position  `json:"position"`
	IsSubstitute bool      `json:"isSubstitute,omitempty"`
}

// PlayerRef is the lookup-only back-reference an action keeps to a player.
type PlayerRef struct {
	ID     uuid.UUID
	Name   string
	Number int
}

// Ref builds an action back-reference from a roster player.
func (p Player) Ref() PlayerRef {
	return PlayerRef{ID: p.ID, Name: p.Name, Number: p.Number}
}

// PlayerStats is the per-game stat projection for one player. Counters are
// mutated only through the action log and never drop below zero.
// IsSubstitute is frozen at kickoff; IsSubstituted records an in-game exit.
type PlayerStats struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Number        int       `json:"number"`
	Position      Position  `json:"position"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	YellowCards   int       `json:"yellowCards"`
	RedCards      int       `json:"redCards"`
	Saves         int       `json:"saves"`
	TotalShots    int       `json:"totalShots"`
	MinutesPlayed int       `json:"minutesPlayed"`
	IsSubstituted bool      `json:"isSubstituted"`
	IsSubstitute  bool      `json:"isSubstitute"`
}

// GameAction is one immutable entry of the action log. Player fields are
// copies taken at record time so the log stays readable even after roster
// edits or deletions.
type GameAction struct {
	ID                 uuid.UUID  `json:"id"`
	Timestamp          time.Time  `json:"timestamp"`
	Half               GameHalf   `json:"gameHalf"`
	ElapsedSeconds     int        `json:"elapsedSeconds"`
	Type               ActionType `json:"actionType"`
	PlayerID           *uuid.UUID `json:"playerId,omitempty"`
	PlayerName         string     `json:"playerName"`
	PlayerNumber       *int       `json:"playerNumber,omitempty"`
	AssistPlayerID     *uuid.UUID `json:"assistPlayerId,omitempty"`
	AssistPlayerName   *string    `json:"assistPlayerName,omitempty"`
	AssistPlayerNumber *int       `json:"assistPlayerNumber,omitempty"`
}

// TimeString renders the in-half elapsed time as mm:ss.
func (a GameAction) TimeString() string {
	return clockString(a.ElapsedSeconds)
}

// DisplayDescription renders the narrative line shown in action feeds.
func (a GameAction) DisplayDescription() string {
	name := a.PlayerName
	if a.PlayerNumber != nil {
		name = fmt.Sprintf("#%d %s", *a.PlayerNumber, a.PlayerName)
	}
	switch a.Type {
	case ActionTeamGoal, ActionOpponentGoal:
		return name + " scored"
	case ActionTeamGoalWithAssist:
		desc := name + " scored"
		if a.AssistPlayerName != nil {
			assist := *a.AssistPlayerName
			if a.AssistPlayerNumber != nil {
				assist = fmt.Sprintf("#%d %s", *a.AssistPlayerNumber, assist)
			}
			desc += " (assist: " + assist + ")"
		}
		return desc
	case ActionUnknownGoal:
		return "Unknown player scored"
	default:
		return name + " - " + string(a.Type)
	}
}

// Game is the serializable state of one match. Live-play behavior (timer,
// transitions, log application) lives in the game package; history and
// export consume finished snapshots of this shape.
type Game struct {
	ID                uuid.UUID      `json:"id"`
	OurTeamName       string         `json:"ourTeamName"`
	OpponentName      string         `json:"opponentName"`
	IsHomeTeam        bool           `json:"isHomeTeam"`
	GameDate          time.Time      `json:"gameDate"`
	Location          string         `json:"location"`
	DurationInSeconds int            `json:"durationInSeconds"`
	OurScore          int            `json:"ourScore"`
	OpponentScore     int            `json:"opponentScore"`
	UnknownGoals      int            `json:"unknownGoals"`
	PlayerStats       []*PlayerStats `json:"playerStats"`
	Actions           []GameAction   `json:"actions"`
	CurrentHalf       GameHalf       `json:"currentHalf"`
	RemainingSeconds  int            `json:"remainingSeconds"`
	Status            GameStatus     `json:"status"`
}

// Result classifies a finished game from our perspective: W, L or T.
func (g Game) Result() string {
	switch {
	case g.OurScore > g.OpponentScore:
		return "W"
	case g.OurScore < g.OpponentScore:
		return "L"
	default:
		return "T"
	}
}

// TimeString renders the countdown as mm:ss.
func (g Game) TimeString() string {
	return clockString(g.RemainingSeconds)
}

func clockString(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

package game

import (
	"github.com/google/uuid"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
)

// unknownScorerName labels goals credited to no specific player, both in
// the action feed and the synthetic CSV row.
const unknownScorerName = "Unknown Player"

// RecordAction appends one log entry stamped with the current half and the
// elapsed match time, then applies its forward effect to the score and the
// stat projection. Scorer is required for player-bound actions, assist only
// for assisted goals; unknown and opponent goals take neither.
func (g *Game) RecordAction(t model.ActionType, scorer, assist *model.PlayerRef) (model.GameAction, error) {
	g.mu.Lock()
	if g.state.Status == model.StatusFinished {
		g.mu.Unlock()
		return model.GameAction{}, ErrInvalidTransition
	}

	var ferrs []FieldError
	switch t {
	case model.ActionUnknownGoal, model.ActionOpponentGoal:
		if scorer != nil || assist != nil {
			ferrs = append(ferrs, FieldError{Field: "player", Message: "must not be set for " + string(t)})
		}
	case model.ActionTeamGoalWithAssist:
		if scorer == nil {
			ferrs = append(ferrs, FieldError{Field: "player", Message: "scorer is required"})
		}
		if assist == nil {
			ferrs = append(ferrs, FieldError{Field: "assist", Message: "assisting player is required"})
		}
	case model.ActionTeamGoal, model.ActionYellowCard, model.ActionRedCard, model.ActionSave, model.ActionShot:
		if scorer == nil {
			ferrs = append(ferrs, FieldError{Field: "player", Message: "player is required"})
		}
		if assist != nil {
			ferrs = append(ferrs, FieldError{Field: "assist", Message: "must not be set for " + string(t)})
		}
	default:
		ferrs = append(ferrs, FieldError{Field: "action_type", Message: "unknown action type"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		g.mu.Unlock()
		return model.GameAction{}, err
	}

	// Player-bound actions must resolve to a projection entry before the
	// log grows; otherwise the log and counters would drift apart.
	if scorer != nil && g.statsLocked(scorer.ID) == nil {
		g.mu.Unlock()
		return model.GameAction{}, ErrNotFound
	}
	if assist != nil && g.statsLocked(assist.ID) == nil {
		g.mu.Unlock()
		return model.GameAction{}, ErrNotFound
	}

	action := model.GameAction{
		ID:             uuid.New(),
		Timestamp:      g.clk.Now(),
		Half:           g.state.CurrentHalf,
		ElapsedSeconds: g.state.DurationInSeconds - g.state.RemainingSeconds,
		Type:           t,
	}
	switch t {
	case model.ActionUnknownGoal:
		action.PlayerName = unknownScorerName
	case model.ActionOpponentGoal:
		action.PlayerName = g.state.OpponentName
	default:
		id := scorer.ID
		num := scorer.Number
		action.PlayerID = &id
		action.PlayerName = scorer.Name
		action.PlayerNumber = &num
	}
	if assist != nil {
		id := assist.ID
		name := assist.Name
		num := assist.Number
		action.AssistPlayerID = &id
		action.AssistPlayerName = &name
		action.AssistPlayerNumber = &num
	}

	g.state.Actions = append(g.state.Actions, action)
	g.applyLocked(action)
	g.log.Debug().
		Str("action_type", string(t)).
		Str("half", string(action.Half)).
		Int("elapsed_seconds", action.ElapsedSeconds).
		Msg("action recorded")
	g.mu.Unlock()
	g.notify()
	return action, nil
}

// RemoveAction deletes the log entry with the given id and applies the
// exact inverse of its forward effect, clamped at zero.
func (g *Game) RemoveAction(id uuid.UUID) error {
	g.mu.Lock()
	if g.state.Status == model.StatusFinished {
		g.mu.Unlock()
		return ErrInvalidTransition
	}
	idx := -1
	for i, a := range g.state.Actions {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		g.mu.Unlock()
		return ErrNotFound
	}
	action := g.state.Actions[idx]
	g.state.Actions = append(g.state.Actions[:idx], g.state.Actions[idx+1:]...)
	g.retractLocked(action)
	g.log.Debug().Str("action_type", string(action.Type)).Msg("action removed")
	g.mu.Unlock()
	g.notify()
	return nil
}

// RemoveMostRecent undoes the newest action (by wall-clock timestamp)
// matching any of the given types, optionally restricted to one player.
// The UI drives undo this way because it rarely holds a direct action
// reference ("remove the goalkeeper's most recent goal").
func (g *Game) RemoveMostRecent(types []model.ActionType, playerID *uuid.UUID) (model.GameAction, error) {
	g.mu.Lock()
	best := -1
	for i, a := range g.state.Actions {
		if !actionMatches(a, types, playerID) {
			continue
		}
		if best < 0 || a.Timestamp.After(g.state.Actions[best].Timestamp) {
			best = i
		}
	}
	if best < 0 {
		g.mu.Unlock()
		return model.GameAction{}, ErrNotFound
	}
	action := g.state.Actions[best]
	g.mu.Unlock()

	if err := g.RemoveAction(action.ID); err != nil {
		return model.GameAction{}, err
	}
	return action, nil
}

func actionMatches(a model.GameAction, types []model.ActionType, playerID *uuid.UUID) bool {
	typeOK := false
	for _, t := range types {
		if a.Type == t {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return false
	}
	if playerID == nil {
		return true
	}
	return a.PlayerID != nil && *a.PlayerID == *playerID
}

func (g *Game) applyLocked(a model.GameAction) {
	scorer := g.actionStatsLocked(a.PlayerID)
	assist := g.actionStatsLocked(a.AssistPlayerID)
	switch a.Type {
	case model.ActionTeamGoal:
		if scorer != nil {
			scorer.Goals++
		}
		g.state.OurScore++
	case model.ActionTeamGoalWithAssist:
		if scorer != nil {
			scorer.Goals++
		}
		if assist != nil {
			assist.Assists++
		}
		g.state.OurScore++
	case model.ActionUnknownGoal:
		g.state.UnknownGoals++
		g.state.OurScore++
	case model.ActionOpponentGoal:
		g.state.OpponentScore++
	case model.ActionYellowCard:
		if scorer != nil {
			scorer.YellowCards++
		}
	case model.ActionRedCard:
		if scorer != nil {
			scorer.RedCards++
		}
	case model.ActionSave:
		if scorer != nil {
			scorer.Saves++
		}
	case model.ActionShot:
		if scorer != nil {
			scorer.TotalShots++
		}
	}
}

// retractLocked is the clamped inverse of applyLocked: counters and scores
// never go below zero even if the log was made inconsistent elsewhere.
func (g *Game) retractLocked(a model.GameAction) {
	scorer := g.actionStatsLocked(a.PlayerID)
	assist := g.actionStatsLocked(a.AssistPlayerID)
	switch a.Type {
	case model.ActionTeamGoal:
		if scorer != nil {
			scorer.Goals = clamp(scorer.Goals - 1)
		}
		g.state.OurScore = clamp(g.state.OurScore - 1)
	case model.ActionTeamGoalWithAssist:
		if scorer != nil {
			scorer.Goals = clamp(scorer.Goals - 1)
		}
		if assist != nil {
			assist.Assists = clamp(assist.Assists - 1)
		}
		g.state.OurScore = clamp(g.state.OurScore - 1)
	case model.ActionUnknownGoal:
		g.state.UnknownGoals = clamp(g.state.UnknownGoals - 1)
		g.state.OurScore = clamp(g.state.OurScore - 1)
	case model.ActionOpponentGoal:
		g.state.OpponentScore = clamp(g.state.OpponentScore - 1)
	case model.ActionYellowCard:
		if scorer != nil {
			scorer.YellowCards = clamp(scorer.YellowCards - 1)
		}
	case model.ActionRedCard:
		if scorer != nil {
			scorer.RedCards = clamp(scorer.RedCards - 1)
		}
	case model.ActionSave:
		if scorer != nil {
			scorer.Saves = clamp(scorer.Saves - 1)
		}
	case model.ActionShot:
		if scorer != nil {
			scorer.TotalShots = clamp(scorer.TotalShots - 1)
		}
	}
}

func (g *Game) actionStatsLocked(id *uuid.UUID) *model.PlayerStats {
	if id == nil {
		return nil
	}
	return g.statsLocked(*id)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

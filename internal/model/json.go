package model

import "encoding/json"

// Older saved games predate several fields. Decoding fills explicit
// defaults per field so history written by early versions still loads:
//
//	ourTeamName  -> "HOME"
//	isHomeTeam   -> true
//	status       -> finished (only completed games were ever persisted)
//	actions      -> empty log
//	unknownGoals -> 0
//
// Zero-valued defaults fall out of normal decoding; only the non-zero
// ones need the shadow struct below.
func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	shadow := struct {
		*plain
		OurTeamName *string     `json:"ourTeamName"`
		IsHomeTeam  *bool       `json:"isHomeTeam"`
		Status      *GameStatus `json:"status"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	g.OurTeamName = "HOME"
	if shadow.OurTeamName != nil {
		g.OurTeamName = *shadow.OurTeamName
	}
	g.IsHomeTeam = true
	if shadow.IsHomeTeam != nil {
		g.IsHomeTeam = *shadow.IsHomeTeam
	}
	g.Status = StatusFinished
	if shadow.Status != nil {
		g.Status = *shadow.Status
	}
	return nil
}

// MigrateLegacyPlayers rewrites players still carrying the deprecated
// substitute position to {Forward, IsSubstitute: true}. It reports whether
// anything changed so the caller can persist the rewritten roster at once.
// Running it twice is harmless.
func MigrateLegacyPlayers(players []Player) ([]Player, bool) {
	changed := false
	out := make([]Player, len(players))
	for i, p := range players {
		if p.Position == PositionLegacySubstitute {
			p.Position = PositionForward
			p.IsSubstitute = true
			changed = true
		}
		out[i] = p
	}
	return out, changed
}

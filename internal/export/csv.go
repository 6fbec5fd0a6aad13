// Package export flattens finished games into the tabular formats the
// share sheet sends out. It only reads snapshots; nothing here mutates
// game state.
package export

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
)

const csvDateLayout = "2006-01-02 15:04"

var historyHeader = []string{
	"Date", "Opponent", "Location", "Result", "Our Score", "Opponent Score",
	"Player Name", "Player Number", "Position", "Goals", "Assists",
	"Yellow Cards", "Red Cards", "Saves", "Shots", "Substituted",
}

// HistoryCSV renders the full game history, one row per player stat line
// plus a synthetic Unknown Player row whenever a game has unattributed
// goals.
func HistoryCSV(games []model.Game) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(historyHeader); err != nil {
		return "", err
	}
	for _, g := range games {
		date := g.GameDate.Format(csvDateLayout)
		for _, ps := range g.PlayerStats {
			row := []string{
				date, g.OpponentName, g.Location, g.Result(),
				strconv.Itoa(g.OurScore), strconv.Itoa(g.OpponentScore),
				ps.Name, strconv.Itoa(ps.Number), string(ps.Position),
				strconv.Itoa(ps.Goals), strconv.Itoa(ps.Assists),
				strconv.Itoa(ps.YellowCards), strconv.Itoa(ps.RedCards),
				strconv.Itoa(ps.Saves), strconv.Itoa(ps.TotalShots),
				strconv.FormatBool(ps.IsSubstituted),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
		if g.UnknownGoals > 0 {
			row := []string{
				date, g.OpponentName, g.Location, g.Result(),
				strconv.Itoa(g.OurScore), strconv.Itoa(g.OpponentScore),
				"Unknown Player", "0", "Unknown",
				strconv.Itoa(g.UnknownGoals), "0", "0", "0", "0", "0", "false",
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// GameSummaryCSV renders the compact per-player sheet shown when a single
// game wraps up.
func GameSummaryCSV(g model.Game) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"Name", "Number", "Position", "Goals", "Shots", "Assists", "Saves"}); err != nil {
		return "", err
	}
	for _, ps := range g.PlayerStats {
		row := []string{
			ps.Name, strconv.Itoa(ps.Number), string(ps.Position),
			strconv.Itoa(ps.Goals), strconv.Itoa(ps.TotalShots),
			strconv.Itoa(ps.Assists), strconv.Itoa(ps.Saves),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

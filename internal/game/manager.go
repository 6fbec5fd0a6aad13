package game

import (
	"strings"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
)

// HistorySink receives finished games. The history store implements it;
// tests substitute fakes.
type HistorySink interface {
	SaveGame(g model.Game)
}

// Manager owns at most one active game system-wide and hands finished
// games to history.
type Manager struct {
	mu      sync.Mutex
	clk     clock.Clock
	log     zerolog.Logger
	baseLog zerolog.Logger
	history HistorySink
	current *Game
}

// NewManager builds a lifecycle manager writing finished games to history.
func NewManager(clk clock.Clock, history HistorySink, logger zerolog.Logger) *Manager {
	l := logger.With().Str("module", "game").Str("component", "lifecycle").Logger()
	return &Manager{clk: clk, log: l, baseLog: logger, history: history}
}

// StartGameInput carries everything needed to set up a match. Roster is a
// one-way copy of the selected players, not a live reference.
type StartGameInput struct {
	OurTeamName       string
	OpponentName      string
	IsHomeTeam        bool
	GameDate          time.Time
	Location          string
	Roster            []model.Player
	DurationInSeconds int
}

// StartGame constructs a new game with one stat line per supplied player.
// It fails with ErrGameActive while another game is live.
func (m *Manager) StartGame(in StartGameInput) (*Game, error) {
	var ferrs []FieldError
	if strings.TrimSpace(in.OurTeamName) == "" {
		ferrs = append(ferrs, FieldError{Field: "our_team_name", Message: "must not be empty"})
	}
	if strings.TrimSpace(in.OpponentName) == "" {
		ferrs = append(ferrs, FieldError{Field: "opponent_name", Message: "must not be empty"})
	}
	if in.GameDate.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "game_date", Message: "must be set"})
	}
	if len(in.Roster) == 0 {
		ferrs = append(ferrs, FieldError{Field: "roster", Message: "at least one player is required"})
	}
	if in.DurationInSeconds <= 0 {
		ferrs = append(ferrs, FieldError{Field: "duration_in_seconds", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		m.log.Debug().Interface("field_errors", ferrs).Msg("start game validation failed")
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return nil, ErrGameActive
	}
	g := newGame(m.clk, m.baseLog, in)
	m.current = g
	m.log.Info().
		Str("opponent", in.OpponentName).
		Int("players", len(in.Roster)).
		Int("half_seconds", in.DurationInSeconds).
		Msg("game started")
	return g, nil
}

// CurrentGame returns the live game, or nil when none is active.
func (m *Manager) CurrentGame() *Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsGameActive reports whether a game is live.
func (m *Manager) IsGameActive() bool {
	return m.CurrentGame() != nil
}

// EndGame finishes the active game: stop the timer, hand the snapshot to
// history, clear the slot. With no active game it is a no-op. Ending
// before the second half is rejected by the state machine.
func (m *Manager) EndGame() error {
	m.mu.Lock()
	g := m.current
	m.mu.Unlock()
	if g == nil {
		return nil
	}
	// The timer must be provably dead before the snapshot leaves the engine;
	// end() guarantees that.
	if err := g.end(); err != nil {
		return err
	}
	snap := g.Snapshot()
	m.history.SaveGame(snap)

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	m.log.Info().Str("result", snap.Result()).Msg("game ended")
	return nil
}

// SyncPlayerToGame propagates roster display edits into the live game's
// matching stat line. It is a no-op when no game is active or the player
// never made the match roster.
func (m *Manager) SyncPlayerToGame(p model.Player) {
	g := m.CurrentGame()
	if g == nil {
		return
	}
	g.syncPlayer(p)
}

// IsRosterLocked reports whether roster edits are currently barred: the
// whole first half, and the second half while the clock runs. The roster
// manager's callers consult this; the roster itself does not enforce it.
func (m *Manager) IsRosterLocked() bool {
	g := m.CurrentGame()
	if g == nil {
		return false
	}
	if g.CurrentHalf() == model.FirstHalf {
		return true
	}
	return g.IsTimerRunning()
}

// Package game owns the live-match engine: the half/timer state machine,
// the event-sourced action log and the per-player stat projection, plus the
// lifecycle manager that holds the single active game.
package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
)

// Game is one live match. All mutation goes through its methods; the mutex
// exists only because the countdown ticker runs on its own goroutine —
// command traffic itself is single-writer by design.
type Game struct {
	mu  sync.Mutex
	clk clock.Clock
	log zerolog.Logger

	state   model.Game
	running bool

	// gen fences the ticker goroutine: a tick carrying a stale generation
	// arrived after StopTimer and must not touch state.
	gen      uint64
	stopTick chan struct{}

	onHalfEnd func(model.GameHalf)
	listeners []func()
}

func newGame(clk clock.Clock, logger zerolog.Logger, in StartGameInput) *Game {
	g := &Game{
		clk: clk,
		log: logger.With().Str("module", "game").Str("component", "engine").Logger(),
	}
	stats := make([]*model.PlayerStats, 0, len(in.Roster))
	for _, p := range in.Roster {
		stats = append(stats, &model.PlayerStats{
			ID:           p.ID,
			Name:         p.Name,
			Number:       p.Number,
			Position:     p.Position,
			IsSubstitute: p.IsSubstitute,
		})
	}
	g.state = model.Game{
		ID:                uuid.New(),
		OurTeamName:       in.OurTeamName,
		OpponentName:      in.OpponentName,
		IsHomeTeam:        in.IsHomeTeam,
		GameDate:          in.GameDate,
		Location:          in.Location,
		DurationInSeconds: in.DurationInSeconds,
		PlayerStats:       stats,
		CurrentHalf:       model.FirstHalf,
		RemainingSeconds:  in.DurationInSeconds,
		Status:            model.StatusScheduled,
	}
	return g
}

// Subscribe registers a callback invoked after every state change. The
// presentation layer uses it to refresh bindings; callbacks run outside the
// engine lock.
func (g *Game) Subscribe(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// OnHalfEnd registers the callback fired when the countdown reaches zero.
// The engine only pauses; advancing to the second half stays an explicit
// EndHalf call by the caller.
func (g *Game) OnHalfEnd(fn func(model.GameHalf)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onHalfEnd = fn
}

func (g *Game) notify() {
	g.mu.Lock()
	listeners := make([]func(), len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Start moves the game from scheduled into the first half, paused, with a
// full clock and a 0-0 score.
func (g *Game) Start() error {
	g.mu.Lock()
	if g.state.Status != model.StatusScheduled {
		g.mu.Unlock()
		return ErrInvalidTransition
	}
	g.state.Status = model.StatusInProgress
	g.state.CurrentHalf = model.FirstHalf
	g.state.RemainingSeconds = g.state.DurationInSeconds
	g.state.OurScore = 0
	g.state.OpponentScore = 0
	g.mu.Unlock()
	g.notify()
	return nil
}

// StartTimer resumes the countdown within the current half. Running twice
// is a no-op, matching the original tracker.
func (g *Game) StartTimer() error {
	g.mu.Lock()
	if g.state.Status != model.StatusInProgress {
		g.mu.Unlock()
		return ErrInvalidTransition
	}
	if g.running {
		g.mu.Unlock()
		return nil
	}
	g.running = true
	g.gen++
	gen := g.gen
	stop := make(chan struct{})
	g.stopTick = stop
	ticker := g.clk.Ticker(time.Second)
	g.mu.Unlock()

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				g.tick(gen)
			}
		}
	}()
	g.notify()
	return nil
}

// StopTimer pauses the countdown. After it returns no further tick can
// mutate the game, even one already in flight.
func (g *Game) StopTimer() {
	g.mu.Lock()
	g.stopTimerLocked()
	g.mu.Unlock()
	g.notify()
}

func (g *Game) stopTimerLocked() {
	if !g.running {
		return
	}
	g.running = false
	g.gen++
	close(g.stopTick)
	g.stopTick = nil
}

func (g *Game) tick(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || !g.running {
		// stale tick from a timer stopped after this fired
		g.mu.Unlock()
		return
	}
	if g.state.RemainingSeconds > 0 {
		g.state.RemainingSeconds--
	}
	var halfEnded func(model.GameHalf)
	half := g.state.CurrentHalf
	if g.state.RemainingSeconds == 0 {
		g.stopTimerLocked()
		halfEnded = g.onHalfEnd
	}
	g.mu.Unlock()

	if halfEnded != nil {
		halfEnded(half)
	}
	g.notify()
}

// EndHalf moves from the first half to the second: timer stopped, clock
// reset to a full half. Calling it from any other state is rejected.
func (g *Game) EndHalf() error {
	g.mu.Lock()
	if g.state.Status != model.StatusInProgress || g.state.CurrentHalf != model.FirstHalf {
		g.mu.Unlock()
		return ErrInvalidTransition
	}
	g.stopTimerLocked()
	g.state.CurrentHalf = model.SecondHalf
	g.state.RemainingSeconds = g.state.DurationInSeconds
	g.mu.Unlock()
	g.notify()
	return nil
}

// end finishes the game. Only valid from the second half; the timer is
// deterministically stopped before the caller hands the snapshot to history.
func (g *Game) end() error {
	g.mu.Lock()
	if g.state.Status != model.StatusInProgress || g.state.CurrentHalf != model.SecondHalf {
		g.mu.Unlock()
		return ErrInvalidTransition
	}
	g.stopTimerLocked()
	g.state.Status = model.StatusFinished
	g.mu.Unlock()
	g.notify()
	return nil
}

// Snapshot returns a deep copy of the serializable game state.
func (g *Game) Snapshot() model.Game {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() model.Game {
	out := g.state
	out.PlayerStats = make([]*model.PlayerStats, len(g.state.PlayerStats))
	for i, ps := range g.state.PlayerStats {
		cp := *ps
		out.PlayerStats[i] = &cp
	}
	out.Actions = make([]model.GameAction, len(g.state.Actions))
	copy(out.Actions, g.state.Actions)
	return out
}

// Accessors for the presentation layer. Each takes the lock so reads are
// consistent with ticker updates.

func (g *Game) OurScore() int        { g.mu.Lock(); defer g.mu.Unlock(); return g.state.OurScore }
func (g *Game) OpponentScore() int   { g.mu.Lock(); defer g.mu.Unlock(); return g.state.OpponentScore }
func (g *Game) UnknownGoals() int    { g.mu.Lock(); defer g.mu.Unlock(); return g.state.UnknownGoals }
func (g *Game) IsTimerRunning() bool { g.mu.Lock(); defer g.mu.Unlock(); return g.running }

func (g *Game) CurrentHalf() model.GameHalf {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CurrentHalf
}

func (g *Game) RemainingSeconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.RemainingSeconds
}

func (g *Game) Status() model.GameStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Status
}

// StatsFor returns a copy of the projection entry for the given player id.
func (g *Game) StatsFor(id uuid.UUID) (model.PlayerStats, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ps := g.statsLocked(id); ps != nil {
		return *ps, true
	}
	return model.PlayerStats{}, false
}

func (g *Game) statsLocked(id uuid.UUID) *model.PlayerStats {
	for _, ps := range g.state.PlayerStats {
		if ps.ID == id {
			return ps
		}
	}
	return nil
}

// SetSubstituted flips the left-the-field flag on a projection entry. This
// is independent of the pre-game substitute designation, which stays frozen.
func (g *Game) SetSubstituted(id uuid.UUID, substituted bool) error {
	g.mu.Lock()
	ps := g.statsLocked(id)
	if ps == nil {
		g.mu.Unlock()
		return ErrNotFound
	}
	ps.IsSubstituted = substituted
	g.mu.Unlock()
	g.notify()
	return nil
}

// syncPlayer propagates roster display edits (never counters, never the
// frozen substitute designation) into the matching projection entry.
func (g *Game) syncPlayer(p model.Player) bool {
	g.mu.Lock()
	ps := g.statsLocked(p.ID)
	if ps == nil {
		g.mu.Unlock()
		return false
	}
	ps.Name = p.Name
	ps.Number = p.Number
	ps.Position = p.Position
	g.mu.Unlock()
	g.notify()
	return true
}

// ActionsForHalf returns the log entries of one half ordered by elapsed
// match time. Wall-clock timestamps can diverge from match time when the
// app sat paused, so narrative display must not sort by timestamp.
func (g *Game) ActionsForHalf(half model.GameHalf) []model.GameAction {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.GameAction
	for _, a := range g.state.Actions {
		if a.Half == half {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ElapsedSeconds < out[j].ElapsedSeconds
	})
	return out
}

// Actions returns a copy of the full log in append order.
func (g *Game) Actions() []model.GameAction {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.GameAction, len(g.state.Actions))
	copy(out, g.state.Actions)
	return out
}

// Package roster maintains the player pool and its starter/substitute
// partition. The one invariant enforced at every mutation boundary: the
// starting lineup holds at most one goalkeeper.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
)

// Declinable outcomes the UI prompts on rather than treating as fatal.
var (
	// ErrGoalkeeperExists means the starting lineup already has a keeper;
	// the caller can offer "add as substitute instead".
	ErrGoalkeeperExists = errors.New("starting lineup already has a goalkeeper")
	// ErrGoalkeeperRequired blocks removals and edits that would strip the
	// lineup of its only starting goalkeeper.
	ErrGoalkeeperRequired = errors.New("starting lineup needs its goalkeeper")
	// ErrSwapRequired means the edit needs the explicit SwapGoalkeepers
	// operation instead of a plain update.
	ErrSwapRequired = errors.New("goalkeeper swap required")
	// ErrNotFound is returned when a player id is absent from the roster.
	ErrNotFound = errors.New("player not found")
	// ErrInvalidInput marks a malformed command (empty name, bad number).
	ErrInvalidInput = errors.New("invalid input")
)

// GameSync is the non-owning handle the roster uses to push display edits
// into a live game. The lifecycle manager implements it.
type GameSync interface {
	SyncPlayerToGame(p model.Player)
}

// Manager owns the player pool plus team-level settings, persisting every
// mutation best-effort through the snapshot store.
type Manager struct {
	mu    sync.Mutex
	log   zerolog.Logger
	store storage.KV

	players      []model.Player
	homeTeamName string
	teamFormat   model.TeamFormat
	isHomeTeam   bool

	game      GameSync
	listeners []func()
}

// New loads the roster and team settings from the store, applying the
// legacy substitute-position migration (and persisting it) if needed.
func New(ctx context.Context, store storage.KV, logger zerolog.Logger) *Manager {
	m := &Manager{
		log:          logger.With().Str("module", "roster").Str("component", "manager").Logger(),
		store:        store,
		homeTeamName: "HOME",
		teamFormat:   model.FormatElevenVEleven,
		isHomeTeam:   true,
	}
	m.load(ctx)
	return m
}

// SetGameSync wires the lifecycle manager in after construction. The roster
// holds it purely to push sync notifications; it does not own it.
func (m *Manager) SetGameSync(g GameSync) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.game = g
}

// Subscribe registers a callback invoked after every roster change.
func (m *Manager) Subscribe(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify() {
	m.mu.Lock()
	listeners := make([]func(), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// AddPlayer appends a new player. With isSubstitute nil the designation is
// auto-assigned: bench if the starting lineup is full, starter otherwise.
// Adding a starting goalkeeper next to an existing one is declined with
// ErrGoalkeeperExists.
func (m *Manager) AddPlayer(ctx context.Context, name string, number int, position model.Position, isSubstitute *bool) (model.Player, error) {
	if name == "" {
		return model.Player{}, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if number < 0 {
		return model.Player{}, fmt.Errorf("%w: number must not be negative", ErrInvalidInput)
	}
	if !position.Valid() {
		return model.Player{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
	}

	m.mu.Lock()
	sub := false
	if isSubstitute != nil {
		sub = *isSubstitute
	} else {
		sub = m.lineupFullLocked()
	}
	if position == model.PositionGoalkeeper && !sub && !m.canAddGoalkeeperLocked(uuid.Nil) {
		m.mu.Unlock()
		return model.Player{}, ErrGoalkeeperExists
	}
	p := model.Player{
		ID:           uuid.New(),
		Name:         name,
		Number:       number,
		Position:     position,
		IsSubstitute: sub,
	}
	m.players = append(m.players, p)
	m.saveRosterLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return p, nil
}

// UpdatePlayer replaces a player by id and, when a game is live, pushes the
// display fields into the matching stat line. Edits that would bench or
// reposition the only starting goalkeeper are declined with
// ErrGoalkeeperRequired; moving a substitute onto an occupied starting
// keeper spot needs SwapGoalkeepers and is declined with ErrSwapRequired.
func (m *Manager) UpdatePlayer(ctx context.Context, p model.Player) error {
	m.mu.Lock()
	idx := m.indexLocked(p.ID)
	if idx < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	stored := m.players[idx]
	if stored.Position == model.PositionGoalkeeper && !stored.IsSubstitute &&
		(p.IsSubstitute || p.Position != model.PositionGoalkeeper) {
		m.mu.Unlock()
		return ErrGoalkeeperRequired
	}
	if p.Position == model.PositionGoalkeeper && !p.IsSubstitute && !m.canAddGoalkeeperLocked(p.ID) {
		m.mu.Unlock()
		if stored.IsSubstitute {
			return ErrSwapRequired
		}
		return ErrGoalkeeperExists
	}
	m.players[idx] = p
	m.saveRosterLocked(ctx)
	game := m.game
	m.mu.Unlock()

	if game != nil {
		game.SyncPlayerToGame(p)
	}
	m.notify()
	return nil
}

// RemovePlayers deletes players by id. The removal is declined entirely
// when it would leave zero starting goalkeepers while at least one was
// present before.
func (m *Manager) RemovePlayers(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	m.mu.Lock()
	hadKeeper := false
	keeperLeft := false
	remaining := make([]model.Player, 0, len(m.players))
	for _, p := range m.players {
		starterKeeper := p.Position == model.PositionGoalkeeper && !p.IsSubstitute
		if starterKeeper {
			hadKeeper = true
		}
		if drop[p.ID] {
			continue
		}
		if starterKeeper {
			keeperLeft = true
		}
		remaining = append(remaining, p)
	}
	if hadKeeper && !keeperLeft {
		m.mu.Unlock()
		return ErrGoalkeeperRequired
	}
	m.players = remaining
	m.saveRosterLocked(ctx)
	m.mu.Unlock()
	m.notify()
	return nil
}

// SwapGoalkeepers atomically benches the current starting goalkeeper and
// promotes the incoming player to starter-keeper. Both moves happen or
// neither does.
func (m *Manager) SwapGoalkeepers(ctx context.Context, incoming uuid.UUID) error {
	m.mu.Lock()
	in := m.indexLocked(incoming)
	out := -1
	for i, p := range m.players {
		if p.Position == model.PositionGoalkeeper && !p.IsSubstitute {
			out = i
			break
		}
	}
	if in < 0 || out < 0 || in == out {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.players[out].IsSubstitute = true
	m.players[in].Position = model.PositionGoalkeeper
	m.players[in].IsSubstitute = false
	benched, promoted := m.players[out], m.players[in]
	m.saveRosterLocked(ctx)
	game := m.game
	m.mu.Unlock()

	if game != nil {
		game.SyncPlayerToGame(benched)
		game.SyncPlayerToGame(promoted)
	}
	m.notify()
	return nil
}

// CanAddGoalkeeper reports whether no starter other than ignoring currently
// holds the goalkeeper position. Pass uuid.Nil to ignore nobody.
func (m *Manager) CanAddGoalkeeper(ignoring uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canAddGoalkeeperLocked(ignoring)
}

func (m *Manager) canAddGoalkeeperLocked(ignoring uuid.UUID) bool {
	for _, p := range m.players {
		if p.ID == ignoring || p.IsSubstitute {
			continue
		}
		if p.Position == model.PositionGoalkeeper {
			return false
		}
	}
	return true
}

// IsStartingLineupFull reports whether the starters have reached the team
// format's capacity.
func (m *Manager) IsStartingLineupFull() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lineupFullLocked()
}

func (m *Manager) lineupFullLocked() bool {
	starters := 0
	for _, p := range m.players {
		if !p.IsSubstitute {
			starters++
		}
	}
	return starters >= m.teamFormat.MaxPlayers()
}

// Players returns a copy of the roster.
func (m *Manager) Players() []model.Player {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Player, len(m.players))
	copy(out, m.players)
	return out
}

// Player returns one roster entry by id.
func (m *Manager) Player(id uuid.UUID) (model.Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(id); i >= 0 {
		return m.players[i], true
	}
	return model.Player{}, false
}

func (m *Manager) indexLocked(id uuid.UUID) int {
	for i, p := range m.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Team-level settings, each persisted under its own key.

func (m *Manager) HomeTeamName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.homeTeamName
}

func (m *Manager) SetHomeTeamName(ctx context.Context, name string) {
	m.mu.Lock()
	m.homeTeamName = name
	m.saveLocked(ctx, storage.KeyHomeTeamName, name)
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) TeamFormat() model.TeamFormat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamFormat
}

func (m *Manager) SetTeamFormat(ctx context.Context, f model.TeamFormat) {
	m.mu.Lock()
	m.teamFormat = f
	m.saveLocked(ctx, storage.KeyTeamFormat, f)
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) IsHomeTeam() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isHomeTeam
}

func (m *Manager) SetIsHomeTeam(ctx context.Context, home bool) {
	m.mu.Lock()
	m.isHomeTeam = home
	m.saveLocked(ctx, storage.KeyIsHomeTeam, home)
	m.mu.Unlock()
	m.notify()
}

// Persistence is best-effort: failures are logged and the in-memory state
// stays authoritative for the session.

func (m *Manager) saveRosterLocked(ctx context.Context) {
	m.saveLocked(ctx, storage.KeyRoster, m.players)
}

func (m *Manager) saveLocked(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		m.log.Error().Err(err).Str("key", key).Msg("encode snapshot failed")
		return
	}
	if err := m.store.Save(ctx, key, data); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("save snapshot failed")
	}
}

func (m *Manager) load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if data, ok := m.loadKey(ctx, storage.KeyRoster); ok {
		var players []model.Player
		if err := json.Unmarshal(data, &players); err != nil {
			m.log.Warn().Err(err).Msg("decode roster failed, starting empty")
		} else {
			migrated, changed := model.MigrateLegacyPlayers(players)
			m.players = migrated
			if changed {
				m.log.Info().Msg("migrated legacy substitute positions")
				m.saveRosterLocked(ctx)
			}
		}
	}
	if data, ok := m.loadKey(ctx, storage.KeyHomeTeamName); ok {
		var name string
		if json.Unmarshal(data, &name) == nil && name != "" {
			m.homeTeamName = name
		}
	}
	if data, ok := m.loadKey(ctx, storage.KeyTeamFormat); ok {
		var f model.TeamFormat
		if json.Unmarshal(data, &f) == nil && f != "" {
			m.teamFormat = f
		}
	}
	if data, ok := m.loadKey(ctx, storage.KeyIsHomeTeam); ok {
		var home bool
		if json.Unmarshal(data, &home) == nil {
			m.isHomeTeam = home
		}
	}
}

func (m *Manager) loadKey(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := m.store.Load(ctx, key)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("load snapshot failed, using defaults")
		return nil, false
	}
	return data, ok
}

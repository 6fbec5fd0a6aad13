package roster_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
	"github.com/adamjolicoeur/soccer-tracker/internal/roster"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/memory"
)

func boolPtr(b bool) *bool { return &b }

func newManager(t *testing.T) (*roster.Manager, *memory.Store) {
	t.Helper()
	store := memory.New()
	return roster.New(context.Background(), store, zerolog.New(io.Discard)), store
}

func seedLineup(t *testing.T, m *roster.Manager) (gk, def model.Player) {
	t.Helper()
	ctx := context.Background()
	gk, err := m.AddPlayer(ctx, "Sam", 1, model.PositionGoalkeeper, nil)
	require.NoError(t, err)
	def, err = m.AddPlayer(ctx, "Alex", 2, model.PositionDefender, nil)
	require.NoError(t, err)
	return gk, def
}

func TestAddPlayerGoalkeeperInvariant(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	seedLineup(t, m)

	_, err := m.AddPlayer(ctx, "Max", 13, model.PositionGoalkeeper, nil)
	require.ErrorIs(t, err, roster.ErrGoalkeeperExists)

	// the declinable outcome: caller retries as substitute
	backup, err := m.AddPlayer(ctx, "Max", 13, model.PositionGoalkeeper, boolPtr(true))
	require.NoError(t, err)
	assert.True(t, backup.IsSubstitute)

	assert.False(t, m.CanAddGoalkeeper(uuid.Nil))
	starters := 0
	for _, p := range m.Players() {
		if p.Position == model.PositionGoalkeeper && !p.IsSubstitute {
			starters++
		}
	}
	assert.Equal(t, 1, starters)
}

func TestAddPlayerAutoAssignsSubstituteWhenLineupFull(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	m.SetTeamFormat(ctx, model.FormatFiveVFive)

	names := []string{"A", "B", "C", "D", "E"}
	for i, n := range names {
		p, err := m.AddPlayer(ctx, n, i+2, model.PositionMidfielder, nil)
		require.NoError(t, err)
		assert.False(t, p.IsSubstitute, "lineup not yet full")
	}
	require.True(t, m.IsStartingLineupFull())

	bench, err := m.AddPlayer(ctx, "F", 7, model.PositionMidfielder, nil)
	require.NoError(t, err)
	assert.True(t, bench.IsSubstitute, "sixth player of a 5v5 goes to the bench")
}

func TestAddPlayerInputValidation(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.AddPlayer(ctx, "", 3, model.PositionForward, nil)
	require.ErrorIs(t, err, roster.ErrInvalidInput)
	_, err = m.AddPlayer(ctx, "Jo", -1, model.PositionForward, nil)
	require.ErrorIs(t, err, roster.ErrInvalidInput)
	_, err = m.AddPlayer(ctx, "Jo", 3, model.PositionLegacySubstitute, nil)
	require.ErrorIs(t, err, roster.ErrInvalidInput)
}

type recordingSync struct{ synced []model.Player }

func (r *recordingSync) SyncPlayerToGame(p model.Player) { r.synced = append(r.synced, p) }

func TestUpdatePlayerSyncsToGame(t *testing.T) {
	m, _ := newManager(t)
	sync := &recordingSync{}
	m.SetGameSync(sync)
	_, def := seedLineup(t, m)

	def.Name = "Alexis"
	def.Number = 4
	require.NoError(t, m.UpdatePlayer(context.Background(), def))

	got, ok := m.Player(def.ID)
	require.True(t, ok)
	assert.Equal(t, "Alexis", got.Name)
	require.Len(t, sync.synced, 1)
	assert.Equal(t, "Alexis", sync.synced[0].Name)

	missing := def
	missing.ID = uuid.New()
	require.ErrorIs(t, m.UpdatePlayer(context.Background(), missing), roster.ErrNotFound)
	assert.Len(t, sync.synced, 1, "no sync on failed update")
}

func TestUpdatePlayerGoalkeeperRules(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	gk, def := seedLineup(t, m)
	bench, err := m.AddPlayer(ctx, "Riley", 9, model.PositionForward, boolPtr(true))
	require.NoError(t, err)

	// a bench player moving onto the keeper spot needs the explicit swap
	bench.Position = model.PositionGoalkeeper
	bench.IsSubstitute = false
	require.ErrorIs(t, m.UpdatePlayer(ctx, bench), roster.ErrSwapRequired)

	// a backup keeper on the bench is fine without a swap
	bench.IsSubstitute = true
	require.NoError(t, m.UpdatePlayer(ctx, bench))

	// a second starting keeper violates the invariant outright
	def.Position = model.PositionGoalkeeper
	require.ErrorIs(t, m.UpdatePlayer(ctx, def), roster.ErrGoalkeeperExists)

	// the current keeper may be edited freely while they stay in the spot
	gk.Name = "Sammy"
	require.NoError(t, m.UpdatePlayer(ctx, gk))
}

func TestUpdatePlayerKeeperGuard(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	gk, _ := seedLineup(t, m)

	// benching the only starting keeper through a plain edit is refused
	benched := gk
	benched.IsSubstitute = true
	require.ErrorIs(t, m.UpdatePlayer(ctx, benched), roster.ErrGoalkeeperRequired)

	// so is moving them off the keeper position
	moved := gk
	moved.Position = model.PositionDefender
	require.ErrorIs(t, m.UpdatePlayer(ctx, moved), roster.ErrGoalkeeperRequired)

	got, ok := m.Player(gk.ID)
	require.True(t, ok)
	assert.Equal(t, model.PositionGoalkeeper, got.Position)
	assert.False(t, got.IsSubstitute, "refused edits change nothing")

	// with a second keeper promoted via swap, the benched one may move freely
	backup, err := m.AddPlayer(ctx, "Riley", 9, model.PositionForward, boolPtr(true))
	require.NoError(t, err)
	require.NoError(t, m.SwapGoalkeepers(ctx, backup.ID))
	old, _ := m.Player(gk.ID)
	old.Position = model.PositionMidfielder
	require.NoError(t, m.UpdatePlayer(ctx, old))
}

func TestRemovePlayersKeeperGuard(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	gk, def := seedLineup(t, m)

	require.ErrorIs(t, m.RemovePlayers(ctx, gk.ID), roster.ErrGoalkeeperRequired)
	assert.Len(t, m.Players(), 2, "refused removal changes nothing")

	require.NoError(t, m.RemovePlayers(ctx, def.ID))
	assert.Len(t, m.Players(), 1)

	// still guarded when the keeper is the only player left
	require.ErrorIs(t, m.RemovePlayers(ctx, gk.ID), roster.ErrGoalkeeperRequired)

	// a roster that never had a starting keeper has nothing to guard
	other, _ := newManager(t)
	p, err := other.AddPlayer(ctx, "Jo", 5, model.PositionForward, nil)
	require.NoError(t, err)
	require.NoError(t, other.RemovePlayers(ctx, p.ID))
	assert.Empty(t, other.Players())
}

func TestSwapGoalkeepersAtomic(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()
	sync := &recordingSync{}
	m.SetGameSync(sync)
	gk, _ := seedLineup(t, m)
	bench, err := m.AddPlayer(ctx, "Riley", 9, model.PositionForward, boolPtr(true))
	require.NoError(t, err)

	require.NoError(t, m.SwapGoalkeepers(ctx, bench.ID))

	benched, _ := m.Player(gk.ID)
	assert.True(t, benched.IsSubstitute)
	assert.Equal(t, model.PositionGoalkeeper, benched.Position)
	promoted, _ := m.Player(bench.ID)
	assert.False(t, promoted.IsSubstitute)
	assert.Equal(t, model.PositionGoalkeeper, promoted.Position)
	assert.Len(t, sync.synced, 2, "both sides of the swap sync to the game")

	// unknown incoming id leaves everything untouched
	require.ErrorIs(t, m.SwapGoalkeepers(ctx, uuid.New()), roster.ErrNotFound)
	after, _ := m.Player(bench.ID)
	assert.False(t, after.IsSubstitute)
}

func TestTeamSettingsPersist(t *testing.T) {
	m, store := newManager(t)
	ctx := context.Background()

	m.SetHomeTeamName(ctx, "Eagles")
	m.SetTeamFormat(ctx, model.FormatSevenVSeven)
	m.SetIsHomeTeam(ctx, false)
	seedLineup(t, m)

	reloaded := roster.New(ctx, store, zerolog.New(io.Discard))
	assert.Equal(t, "Eagles", reloaded.HomeTeamName())
	assert.Equal(t, model.FormatSevenVSeven, reloaded.TeamFormat())
	assert.False(t, reloaded.IsHomeTeam())
	assert.Len(t, reloaded.Players(), 2)
}

func TestLegacySubstituteMigration(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	legacy := []model.Player{
		{ID: uuid.New(), Name: "Sam", Number: 1, Position: model.PositionGoalkeeper},
		{ID: uuid.New(), Name: "Old", Number: 12, Position: model.PositionLegacySubstitute},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, storage.KeyRoster, data))

	m := roster.New(ctx, store, zerolog.New(io.Discard))
	migrated, ok := m.Player(legacy[1].ID)
	require.True(t, ok)
	assert.Equal(t, model.PositionForward, migrated.Position)
	assert.True(t, migrated.IsSubstitute)

	// migration persists immediately, so a second load sees current data
	raw, ok2, err := store.Load(ctx, storage.KeyRoster)
	require.NoError(t, err)
	require.True(t, ok2)
	var persisted []model.Player
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, model.PositionForward, persisted[1].Position)
	assert.True(t, persisted[1].IsSubstitute)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, assert.AnError
}
func (failingStore) Save(context.Context, string, []byte) error { return assert.AnError }

func TestStorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	m := roster.New(ctx, failingStore{}, zerolog.New(io.Discard))

	p, err := m.AddPlayer(ctx, "Sam", 1, model.PositionGoalkeeper, nil)
	require.NoError(t, err, "persistence failure must not fail the mutation")
	got, ok := m.Player(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Sam", got.Name)
}

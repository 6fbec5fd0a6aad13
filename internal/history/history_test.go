package history_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjolicoeur/soccer-tracker/internal/history"
	"github.com/adamjolicoeur/soccer-tracker/internal/model"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/memory"
)

func finishedGame(opponent string, date time.Time) model.Game {
	return model.Game{
		ID:           uuid.New(),
		OurTeamName:  "Eagles",
		OpponentName: opponent,
		IsHomeTeam:   true,
		GameDate:     date,
		OurScore:     2,
		Status:       model.StatusFinished,
	}
}

func TestSaveGameOrdersNewestFirst(t *testing.T) {
	store := memory.New()
	s := history.New(context.Background(), store, zerolog.New(io.Discard))

	older := finishedGame("Hawks", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	newer := finishedGame("Owls", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	s.SaveGame(older)
	s.SaveGame(newer)

	games := s.Games()
	require.Len(t, games, 2)
	assert.Equal(t, "Owls", games[0].OpponentName)
	assert.Equal(t, "Hawks", games[1].OpponentName)
}

func TestHistorySurvivesReload(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	s := history.New(ctx, store, zerolog.New(io.Discard))
	g := finishedGame("Hawks", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	s.SaveGame(g)

	reloaded := history.New(ctx, store, zerolog.New(io.Discard))
	games := reloaded.Games()
	require.Len(t, games, 1)
	assert.Equal(t, g.ID, games[0].ID)
	assert.Equal(t, "W", games[0].Result())
}

func TestDelete(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	s := history.New(ctx, store, zerolog.New(io.Discard))
	a := finishedGame("Hawks", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	b := finishedGame("Owls", time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC))
	s.SaveGame(a)
	s.SaveGame(b)

	s.Delete(ctx, a.ID, uuid.New()) // unknown ids are ignored
	games := s.Games()
	require.Len(t, games, 1)
	assert.Equal(t, b.ID, games[0].ID)

	reloaded := history.New(ctx, store, zerolog.New(io.Discard))
	assert.Len(t, reloaded.Games(), 1)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, assert.AnError
}
func (failingStore) Save(context.Context, string, []byte) error { return assert.AnError }

func TestStorageFailuresKeepMemoryAuthoritative(t *testing.T) {
	s := history.New(context.Background(), failingStore{}, zerolog.New(io.Discard))
	s.SaveGame(finishedGame("Hawks", time.Now()))
	assert.Len(t, s.Games(), 1)
}

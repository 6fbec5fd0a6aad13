// Package history keeps the append-only collection of completed games,
// newest first, persisted best-effort after every mutation.
package history

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adamjolicoeur/soccer-tracker/internal/model"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
)

// Store holds completed games ordered by game date descending.
type Store struct {
	mu    sync.Mutex
	log   zerolog.Logger
	kv    storage.KV
	games []model.Game
}

// New loads previously saved games from the store. A failed or empty load
// starts an empty history; storage never blocks the session.
func New(ctx context.Context, kv storage.KV, logger zerolog.Logger) *Store {
	s := &Store{
		log: logger.With().Str("module", "history").Str("component", "store").Logger(),
		kv:  kv,
	}
	data, ok, err := kv.Load(ctx, storage.KeyCompletedGames)
	if err != nil {
		s.log.Warn().Err(err).Msg("load game history failed, starting empty")
		return s
	}
	if ok {
		if err := json.Unmarshal(data, &s.games); err != nil {
			s.log.Warn().Err(err).Msg("decode game history failed, starting empty")
			s.games = nil
		}
		s.sortLocked()
	}
	return s
}

// SaveGame appends a finished game and persists the whole history.
func (s *Store) SaveGame(g model.Game) {
	s.mu.Lock()
	s.games = append(s.games, g)
	s.sortLocked()
	s.persistLocked(context.Background())
	s.mu.Unlock()
}

// Games returns a copy of the history, newest first.
func (s *Store) Games() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Game, len(s.games))
	copy(out, s.games)
	return out
}

// Delete removes games by id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	s.mu.Lock()
	kept := s.games[:0]
	for _, g := range s.games {
		if !drop[g.ID] {
			kept = append(kept, g)
		}
	}
	s.games = kept
	s.persistLocked(ctx)
	s.mu.Unlock()
}

func (s *Store) sortLocked() {
	sort.SliceStable(s.games, func(i, j int) bool {
		return s.games[i].GameDate.After(s.games[j].GameDate)
	})
}

func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.games)
	if err != nil {
		s.log.Error().Err(err).Msg("encode game history failed")
		return
	}
	if err := s.kv.Save(ctx, storage.KeyCompletedGames, data); err != nil {
		s.log.Warn().Err(err).Msg("save game history failed")
	}
}

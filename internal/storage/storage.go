// Package storage declares the persistence contract the trackers write
// through. Everything is stored as an opaque blob under a fixed key; the
// in-memory state always stays authoritative, so callers log and swallow
// storage errors rather than failing the mutation.
package storage

import "context"

// Fixed keys for the snapshots the managers persist. The raw values match
// the original save format so existing data keeps loading.
const (
	KeyRoster         = "SoccerRoster"
	KeyHomeTeamName   = "SoccerHomeTeamName"
	KeyTeamFormat     = "SoccerTeamFormat"
	KeyIsHomeTeam     = "SoccerIsHomeTeam"
	KeyCompletedGames = "SavedGames"
)

// KV is the minimal load/save capability the managers need. Load returns
// ok=false when the key has never been written; that is not an error.
type KV interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// Package storagetest runs the KV contract against any storage
// implementation so the memory and sqlite stores stay interchangeable.
package storagetest

import (
	"bytes"
	"context"
	"testing"

	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
)

// Factory builds a fresh store and a cleanup for one subtest.
type Factory func(t *testing.T) (storage.KV, func())

// Run exercises the KV contract against the store the factory builds.
func Run(t *testing.T, makeStore Factory) {
	t.Helper()

	t.Run("missing_key", func(t *testing.T) {
		kv, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		_, ok, err := kv.Load(context.Background(), storage.KeyRoster)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if ok {
			t.Fatalf("expected ok=false for unwritten key")
		}
	})

	t.Run("save_and_load", func(t *testing.T) {
		kv, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		want := []byte(`{"players":[]}`)
		if err := kv.Save(ctx, storage.KeyRoster, want); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		got, ok, err := kv.Load(ctx, storage.KeyRoster)
		if err != nil || !ok {
			t.Fatalf("load failed: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("mismatch: got %q want %q", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		kv, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := kv.Save(ctx, storage.KeyHomeTeamName, []byte("HOME")); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := kv.Save(ctx, storage.KeyHomeTeamName, []byte("Eagles")); err != nil {
			t.Fatalf("second save failed: %v", err)
		}
		got, ok, err := kv.Load(ctx, storage.KeyHomeTeamName)
		if err != nil || !ok {
			t.Fatalf("load failed: ok=%v err=%v", ok, err)
		}
		if string(got) != "Eagles" {
			t.Fatalf("overwrite lost: got %q", got)
		}
	})

	t.Run("keys_are_independent", func(t *testing.T) {
		kv, cleanup := makeStore(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if err := kv.Save(ctx, storage.KeyTeamFormat, []byte(`"5v5"`)); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		_, ok, err := kv.Load(ctx, storage.KeyIsHomeTeam)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if ok {
			t.Fatalf("unrelated key should stay unwritten")
		}
	})
}

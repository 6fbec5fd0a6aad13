package memory_test

import (
	"testing"

	"github.com/adamjolicoeur/soccer-tracker/internal/storage"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/memory"
	"github.com/adamjolicoeur/soccer-tracker/internal/storage/storagetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (storage.KV, func()) {
		return memory.New(), func() {}
	})
}

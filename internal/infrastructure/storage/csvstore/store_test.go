package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/stilbar/internal/domain/compound"
)

func writeLibrary(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleLibrary = `num,compound_name,barcode,smiles
1,Wolfender2024_PhenoxyRadicalCoupling_cpd10,H,OC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1
2,Test Dimer,T|–04r.15r–|H,OC1=CC=CC=C1
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	writeLibrary(t, path, sampleLibrary)

	store := NewStore(path, false, nil)
	compounds, err := store.Load()
	require.NoError(t, err)
	require.Len(t, compounds, 2)
	assert.Equal(t, 1, compounds[0].Seq)
	assert.Equal(t, "H", compounds[0].Code)
	assert.Equal(t, "T|–04r.15r–|H", compounds[1].NormalizedCode)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing header", "1,A,,OC1=CC=CC=C1\n"},
		{"bad seq", "num,compound_name,barcode,smiles\nx,A,,OC1=CC=CC=C1\n"},
		{"invalid row", "num,compound_name,barcode,smiles\n1,,,OC1=CC=CC=C1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "lib.csv")
			writeLibrary(t, path, tt.content)
			_, err := NewStore(path, false, nil).Load()
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewStore(filepath.Join(dir, "nope.csv"), false, nil).Load()
		require.Error(t, err)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	store := NewStore(path, false, nil)

	seed := compound.Seed()
	require.NoError(t, store.Save(seed))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(seed))
	for i, c := range loaded {
		assert.Equal(t, seed[i].Hash, c.Hash)
		assert.Equal(t, seed[i].SMILES, c.SMILES)
	}
}

func TestSave_Backup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	writeLibrary(t, path, sampleLibrary)

	store := NewStore(path, true, nil)
	require.NoError(t, store.Save(compound.Seed()[:1]))

	backup, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, sampleLibrary, string(backup))
}

func TestSave_NoBackupForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	store := NewStore(path, true, nil)
	require.NoError(t, store.Save(compound.Seed()[:1]))

	_, err := os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(err))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	writeLibrary(t, path, sampleLibrary)

	store := NewStore(path, false, nil)

	var mu sync.Mutex
	var got []*compound.Compound
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func(compounds []*compound.Compound) {
			mu.Lock()
			got = compounds
			mu.Unlock()
		})
	}()

	// Give the watcher time to register before mutating the file.
	time.Sleep(200 * time.Millisecond)
	writeLibrary(t, path, sampleLibrary+"3,Another,,OC1=CC=CC=C1\n")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_KeepsStateOnBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.csv")
	writeLibrary(t, path, sampleLibrary)

	store := NewStore(path, false, nil)

	reloads := make(chan int, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go store.Watch(ctx, func(compounds []*compound.Compound) {
		reloads <- len(compounds)
	})

	time.Sleep(200 * time.Millisecond)
	writeLibrary(t, path, "garbage without header\n")
	time.Sleep(500 * time.Millisecond)

	// The broken rewrite must not reach the callback.
	select {
	case n := <-reloads:
		t.Fatalf("unexpected reload with %d compounds", n)
	default:
	}
}

// File: internal/taint/catalog_test.go
package taint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

const sampleCatalog = `# Bundled class summaries.
Ljava/lang/Boolean;:SAFE#IMMUTABLE
Ljava/lang/String;:#IMMUTABLE

Ljava/util/concurrent/atomic/AtomicBoolean;:SAFE
`

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		descriptor string
		summary    string
		wantErr    error
	}{
		{"state and marker", "Ljava/lang/Boolean;:SAFE#IMMUTABLE", "Ljava/lang/Boolean;", "SAFE#IMMUTABLE", nil},
		{"marker only", "Ljava/lang/String;:#IMMUTABLE", "Ljava/lang/String;", "#IMMUTABLE", nil},
		{"empty summary field", "Ljava/lang/String;:", "Ljava/lang/String;", "", nil},
		{"no summary field at all", "Ljava/lang/String;", "Ljava/lang/String;", "", ErrSummaryMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			descriptor, summary, err := ParseEntry(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.summary, summary)
			}
			assert.Equal(t, tt.descriptor, descriptor)
		})
	}
}

func TestCatalog_LoadReader(t *testing.T) {
	t.Run("loads valid entries", func(t *testing.T) {
		c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{})
		require.NoError(t, c.LoadReader(strings.NewReader(sampleCatalog)))
		assert.Equal(t, 3, c.Len())
		assert.Zero(t, c.Skipped())

		boolean, ok := c.Lookup("Ljava/lang/Boolean;")
		require.True(t, ok)
		assert.Equal(t, StateSafe, boolean.TaintState())
		assert.True(t, boolean.Immutable())

		str, ok := c.Lookup("Ljava/lang/String;")
		require.True(t, ok)
		assert.Equal(t, StateNull, str.TaintState())
		assert.True(t, str.Immutable())

		atomic, ok := c.Lookup("Ljava/util/concurrent/atomic/AtomicBoolean;")
		require.True(t, ok)
		assert.Equal(t, StateSafe, atomic.TaintState())
		assert.False(t, atomic.Immutable())
	})

	t.Run("skips and counts malformed entries", func(t *testing.T) {
		input := strings.Join([]string{
			"Ljava/lang/Boolean;:SAFE#IMMUTABLE",
			"Ljava/lang/broken",        // no summary field
			"Ljava/lang/String;:bogus", // lowercase state
			"not a descriptor:SAFE",    // bad descriptor
			"Ljava/lang/Integer;:",     // empty summary
			"Ljava/lang/Short;:SAFE",
		}, "\n")

		c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{})
		require.NoError(t, c.LoadReader(strings.NewReader(input)))
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, 4, c.Skipped())

		_, ok := c.Lookup("Ljava/lang/String;")
		assert.False(t, ok)
	})

	t.Run("strict mode fails on first malformed entry", func(t *testing.T) {
		input := "Ljava/lang/Boolean;:SAFE\nLjava/lang/String;:BOGUS\n"
		c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{Strict: true})
		err := c.LoadReader(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("later entries replace earlier ones", func(t *testing.T) {
		input := "Ljava/lang/String;:SAFE\nLjava/lang/String;:#IMMUTABLE\n"
		c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{})
		require.NoError(t, c.LoadReader(strings.NewReader(input)))
		cfg, ok := c.Lookup("Ljava/lang/String;")
		require.True(t, ok)
		assert.Equal(t, StateNull, cfg.TaintState())
		assert.True(t, cfg.Immutable())
	})
}

func TestCatalog_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{})
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, 3, c.Len())

	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestCatalog_ConcurrentAccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewCatalog(nil, zaptest.NewLogger(t), CatalogOptions{})
	require.NoError(t, c.LoadReader(strings.NewReader(sampleCatalog)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			entry := fmt.Sprintf("Lcom/example/Extra%c;:SAFE\n", 'A'+i)
			assert.NoError(t, c.LoadReader(strings.NewReader(entry)))
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if cfg, ok := c.Lookup("Ljava/lang/Boolean;"); ok {
					assert.Equal(t, StateSafe, cfg.EffectiveTaintState(StateUnknown))
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3+8, c.Len())
}

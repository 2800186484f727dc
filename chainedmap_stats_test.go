package chainmap

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainedMap_Stats(t *testing.T) {
	m := NewChainedMap[int, int]()
	stats := m.Stats()
	assert.Equal(t, InitialCapacity, stats.TableLen)
	assert.Equal(t, InitialCapacity, stats.EmptyBuckets)
	assert.Equal(t, 0, stats.MinChainLen)
	assert.Equal(t, 0, stats.MaxChainLen)

	for _, k := range []int{0, 13, 26, 1} {
		m.Put(k, k)
	}
	stats = m.Stats()
	assert.Equal(t, 4, stats.Size)
	assert.Equal(t, 4, stats.Counter)
	assert.Equal(t, InitialCapacity-2, stats.EmptyBuckets)
	assert.Equal(t, 2, stats.Collisions)
	assert.Equal(t, 3, stats.MaxChainLen)
	assert.InDelta(t, 4.0/13.0, stats.LoadFactor, 1e-9)
	assert.InDelta(t, m.LoadFactor(), stats.LoadFactor, 1e-9)
	assert.Equal(t, uint32(0), stats.TotalGrowths)

	s := stats.ToString()
	assert.True(t, strings.HasPrefix(s, "MapStats{\n"))
	assert.Contains(t, s, "MaxChainLen:  3\n")
}

func TestChainedMap_LogsResize(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	m := NewChainedMap[int, int](WithLogger(logger))
	for i := 0; i < 9; i++ {
		_, _, err := m.Put(i, i)
		require.NoError(t, err)
	}
	out := buf.String()
	assert.Contains(t, out, `"old_len":13`)
	assert.Contains(t, out, `"new_len":27`)
	assert.Contains(t, out, `"size":8`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

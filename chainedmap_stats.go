package chainmap

import (
	"fmt"
	"math"
	"strings"
)

// Stats returns statistics for the ChainedMap. It walks every chain,
// so it's an O(N) operation meant for diagnostics or debugging.
func (m *ChainedMap[K, V]) Stats() *MapStats {
	m.lazyInit()
	stats := &MapStats{
		TableLen:     len(m.table),
		Counter:      m.size,
		MinChainLen:  math.MaxInt,
		TotalGrowths: m.totalGrowths,
	}
	for _, head := range m.table {
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		stats.Size += n
		if n == 0 {
			stats.EmptyBuckets++
		}
		if n > 1 {
			stats.Collisions += n - 1
		}
		if n < stats.MinChainLen {
			stats.MinChainLen = n
		}
		if n > stats.MaxChainLen {
			stats.MaxChainLen = n
		}
	}
	stats.LoadFactor = float64(stats.Size) / float64(stats.TableLen)
	return stats
}

// MapStats is ChainedMap statistics.
//
// Warning: map statistics are intended to be used for diagnostic
// purposes, not for production code. Fields may change between minor
// releases.
type MapStats struct {
	// TableLen is the number of buckets in the backing table.
	TableLen int
	// EmptyBuckets is the number of buckets with no chain.
	EmptyBuckets int
	// Size is the number of entries reachable from the buckets.
	Size int
	// Counter is the size the map keeps track of. It always equals
	// Size unless the table was modified through Table.
	Counter int
	// Collisions is the number of entries that are not the head of
	// their chain.
	Collisions int
	// MinChainLen is the length of the shortest chain.
	MinChainLen int
	// MaxChainLen is the length of the longest chain.
	MaxChainLen int
	// LoadFactor is Size divided by TableLen.
	LoadFactor float64
	// TotalGrowths is the number of times the table grew.
	TotalGrowths uint32
}

// ToString returns string representation of map stats.
func (s *MapStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("TableLen:     %d\n", s.TableLen))
	sb.WriteString(fmt.Sprintf("EmptyBuckets: %d\n", s.EmptyBuckets))
	sb.WriteString(fmt.Sprintf("Size:         %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("Counter:      %d\n", s.Counter))
	sb.WriteString(fmt.Sprintf("Collisions:   %d\n", s.Collisions))
	sb.WriteString(fmt.Sprintf("MinChainLen:  %d\n", s.MinChainLen))
	sb.WriteString(fmt.Sprintf("MaxChainLen:  %d\n", s.MaxChainLen))
	sb.WriteString(fmt.Sprintf("LoadFactor:   %.3f\n", s.LoadFactor))
	sb.WriteString(fmt.Sprintf("TotalGrowths: %d\n", s.TotalGrowths))
	sb.WriteString("}\n")
	return sb.String()
}

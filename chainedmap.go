package chainmap

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// InitialCapacity is the number of buckets a new ChainedMap starts with.
	InitialCapacity = 13

	// MaxLoadFactor is the highest size/tableLen ratio the map tolerates.
	// Put grows the table before an insertion could exceed it.
	MaxLoadFactor = 0.67
)

// ChainedMap is a hash map that resolves collisions with external
// chaining: every bucket holds the head of a singly linked list of
// entries whose keys compress to that bucket index.
//
// New keys are prepended to their chain. An existing key has its value
// replaced in place, so its position in the chain never changes.
//
// The table grows to 2*len+1 buckets whenever the next insertion would
// push the load factor above MaxLoadFactor. The check happens before the
// key is looked up, so a Put that only replaces a value may still grow
// the table. The table never shrinks.
//
// A ChainedMap is not safe for concurrent use. The zero value is an
// empty map that uses the default hasher.
type ChainedMap[K comparable, V any] struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		table        []unsafe.Pointer
		size         int
		keyHash      func()
		log          zerolog.Logger
		totalGrowths uint32
		keyNilable   bool
		valNilable   bool
	}{})%CacheLineSize) % CacheLineSize]byte

	table        []*Entry[K, V]
	size         int
	keyHash      HashFunc[K]
	log          zerolog.Logger
	totalGrowths uint32
	keyNilable   bool
	valNilable   bool
}

// Entry is a single key/value node of a bucket chain.
// Entries returned by Table are owned by the map and must not be
// retained across mutations.
type Entry[K comparable, V any] struct {
	key   K
	value V
	next  *Entry[K, V]
}

// Key returns the entry key.
func (e *Entry[K, V]) Key() K { return e.key }

// Value returns the entry value.
func (e *Entry[K, V]) Value() V { return e.value }

// Next returns the following entry in the same chain, or nil.
func (e *Entry[K, V]) Next() *Entry[K, V] { return e.next }

// MapConfig defines configurable ChainedMap options.
type MapConfig struct {
	logger *zerolog.Logger
}

// WithLogger sets the logger used to report table growth.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) func(*MapConfig) {
	return func(c *MapConfig) {
		c.logger = &logger
	}
}

// NewChainedMap creates an empty ChainedMap with InitialCapacity buckets
// and the default hasher for K.
func NewChainedMap[K comparable, V any](
	options ...func(*MapConfig),
) *ChainedMap[K, V] {
	return NewChainedMapWithHasher[K, V](nil, options...)
}

// NewChainedMapWithHasher creates an empty ChainedMap that hashes keys
// with keyHash. A nil keyHash selects the default hasher.
//
// keyHash must be deterministic and consistent with key equality. It may
// return negative values.
func NewChainedMapWithHasher[K comparable, V any](
	keyHash HashFunc[K],
	options ...func(*MapConfig),
) *ChainedMap[K, V] {
	m := &ChainedMap[K, V]{}
	m.init(keyHash, options...)
	return m
}

func (m *ChainedMap[K, V]) init(
	keyHash HashFunc[K],
	options ...func(*MapConfig),
) {
	var cfg MapConfig
	for _, opt := range options {
		opt(&cfg)
	}

	if keyHash == nil {
		keyHash = defaultHasher[K]()
	}
	m.keyHash = keyHash
	if cfg.logger != nil {
		m.log = *cfg.logger
	} else {
		m.log = zerolog.Nop()
	}
	m.keyNilable = nilable(reflect.TypeFor[K]())
	m.valNilable = nilable(reflect.TypeFor[V]())
	m.table = make([]*Entry[K, V], InitialCapacity)
}

func (m *ChainedMap[K, V]) lazyInit() {
	if m.table == nil {
		m.init(nil)
	}
}

// Put associates value with key.
//
// It returns the value previously stored under key with loaded set to
// true, or the zero value and false when key was new. A nil key or
// value fails with ErrInvalidArgument and leaves the map untouched.
func (m *ChainedMap[K, V]) Put(key K, value V) (previous V, loaded bool, err error) {
	m.lazyInit()
	if m.keyNilable && isNil(key) {
		return previous, false, errors.Wrap(ErrInvalidArgument, "put: nil key")
	}
	if m.valNilable && isNil(value) {
		return previous, false, errors.Wrapf(ErrInvalidArgument, "put %v: nil value", key)
	}

	if float64(m.size+1)/float64(len(m.table)) > MaxLoadFactor {
		m.resize(growTableLen(len(m.table)))
	}

	idx := compress(m.keyHash(key), len(m.table))
	head := m.table[idx]
	for e := head; e != nil; e = e.next {
		if e.key == key {
			previous = e.value
			e.value = value
			return previous, true, nil
		}
	}
	m.table[idx] = &Entry[K, V]{key: key, value: value, next: head}
	m.size++
	return previous, false, nil
}

// Remove deletes key from the map and returns the value it held.
//
// A nil key fails with ErrInvalidArgument, a key that is not stored
// fails with ErrNotFound. In both cases the map is unchanged.
func (m *ChainedMap[K, V]) Remove(key K) (value V, err error) {
	m.lazyInit()
	if m.keyNilable && isNil(key) {
		return value, errors.Wrap(ErrInvalidArgument, "remove: nil key")
	}

	idx := compress(m.keyHash(key), len(m.table))
	head := m.table[idx]
	if head == nil {
		return value, errors.Wrapf(ErrNotFound, "remove %v", key)
	}
	if head.key == key {
		m.table[idx] = head.next
		head.next = nil
		m.size--
		return head.value, nil
	}
	for e := head; e.next != nil; e = e.next {
		if succ := e.next; succ.key == key {
			e.next = succ.next
			succ.next = nil
			m.size--
			return succ.value, nil
		}
	}
	return value, errors.Wrapf(ErrNotFound, "remove %v", key)
}

// resize rehashes every entry into a fresh table of newTableLen buckets.
//
// Old buckets are visited in index order and each chain head to tail;
// every entry is prepended to its new bucket. Entries that stay together
// therefore end up in reverse order.
func (m *ChainedMap[K, V]) resize(newTableLen int) {
	oldTableLen := len(m.table)
	newTable := make([]*Entry[K, V], newTableLen)
	for i, e := range m.table {
		for e != nil {
			next := e.next
			idx := compress(m.keyHash(e.key), newTableLen)
			e.next = newTable[idx]
			newTable[idx] = e
			e = next
		}
		m.table[i] = nil
	}
	m.table = newTable
	m.totalGrowths++

	m.log.Debug().
		Int("old_len", oldTableLen).
		Int("new_len", newTableLen).
		Int("size", m.size).
		Msg("Resized backing table")
}

// Size returns the number of entries in the map.
//
//go:nosplit
func (m *ChainedMap[K, V]) Size() int {
	return m.size
}

// IsZero checks if the map is empty.
//
//go:nosplit
func (m *ChainedMap[K, V]) IsZero() bool {
	return m.size == 0
}

// TableLen returns the current number of buckets.
func (m *ChainedMap[K, V]) TableLen() int {
	m.lazyInit()
	return len(m.table)
}

// LoadFactor returns Size()/TableLen() using real division.
func (m *ChainedMap[K, V]) LoadFactor() float64 {
	m.lazyInit()
	return float64(m.size) / float64(len(m.table))
}

// Table exposes the backing bucket array for inspection. Each element is
// the head of a chain or nil. The slice is the map's own storage: it must
// not be modified and becomes stale after the next Put that grows the map.
func (m *ChainedMap[K, V]) Table() []*Entry[K, V] {
	m.lazyInit()
	return m.table
}

// growTableLen returns the length the table grows to from tableLen.
//
//go:nosplit
func growTableLen(tableLen int) int {
	return 2*tableLen + 1
}

// compress maps a hash code to a bucket index in [0, tableLen).
// The remainder keeps the sign of hash, so negative hashes are folded
// with abs.
//
//go:nosplit
func compress(hash, tableLen int) int {
	idx := hash % tableLen
	if idx < 0 {
		idx = -idx
	}
	return idx
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		// nil interface
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

package chainmap

import (
	"hash/maphash"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// HashFunc computes the hash code of a key. It must return the same
// value for equal keys; the result may be negative.
type HashFunc[K comparable] func(key K) int

// defaultHasher picks a hash function for K.
//
// Integer keys hash to their own value so bucket placement is easy to
// predict. Strings go through xxh3, everything else through the runtime
// hash of comparable values seeded once per map.
func defaultHasher[K comparable]() HashFunc[K] {
	switch any(*new(K)).(type) {
	case int, uint, uintptr:
		return func(key K) int {
			return *(*int)(unsafe.Pointer(&key))
		}
	case int64:
		return func(key K) int {
			return int(*(*int64)(unsafe.Pointer(&key)))
		}
	case uint64:
		return func(key K) int {
			return int(*(*uint64)(unsafe.Pointer(&key)))
		}
	case int32:
		return func(key K) int {
			return int(*(*int32)(unsafe.Pointer(&key)))
		}
	case uint32:
		return func(key K) int {
			return int(*(*uint32)(unsafe.Pointer(&key)))
		}
	case int16:
		return func(key K) int {
			return int(*(*int16)(unsafe.Pointer(&key)))
		}
	case uint16:
		return func(key K) int {
			return int(*(*uint16)(unsafe.Pointer(&key)))
		}
	case int8:
		return func(key K) int {
			return int(*(*int8)(unsafe.Pointer(&key)))
		}
	case uint8:
		return func(key K) int {
			return int(*(*uint8)(unsafe.Pointer(&key)))
		}
	case string:
		return func(key K) int {
			return int(xxh3.HashString(*(*string)(unsafe.Pointer(&key))))
		}
	default:
		seed := maphash.MakeSeed()
		return func(key K) int {
			return int(maphash.Comparable(seed, key))
		}
	}
}

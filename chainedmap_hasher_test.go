package chainmap

import (
	"testing"

	"github.com/zeebo/xxh3"
)

func TestDefaultHasher_Integers(t *testing.T) {
	if h := defaultHasher[int](); h(-42) != -42 || h(13) != 13 {
		t.Fatalf("int hasher is not identity")
	}
	if h := defaultHasher[int8](); h(-3) != -3 {
		t.Fatalf("int8 hasher got %d", h(-3))
	}
	if h := defaultHasher[uint16](); h(65535) != 65535 {
		t.Fatalf("uint16 hasher got %d", h(65535))
	}
	if h := defaultHasher[int32](); h(-7) != -7 {
		t.Fatalf("int32 hasher got %d", h(-7))
	}
}

func TestDefaultHasher_String(t *testing.T) {
	h := defaultHasher[string]()
	if got, want := h("chain"), int(xxh3.HashString("chain")); got != want {
		t.Fatalf("string hash got %d want %d", got, want)
	}
}

func TestDefaultHasher_Comparable(t *testing.T) {
	type myInt int
	h := defaultHasher[myInt]()
	if h(5) != h(5) {
		t.Fatalf("hash not deterministic")
	}
	hs := defaultHasher[structKey]()
	if hs(structKey{1, 2}) != hs(structKey{1, 2}) {
		t.Fatalf("hash not deterministic")
	}
}

func TestCompress(t *testing.T) {
	for _, tc := range []struct{ hash, tableLen, want int }{
		{0, 13, 0},
		{13, 13, 0},
		{14, 13, 1},
		{-1, 13, 1},
		{-27, 13, 1},
		{40, 27, 13},
	} {
		if got := compress(tc.hash, tc.tableLen); got != tc.want {
			t.Fatalf("compress(%d, %d) got %d want %d", tc.hash, tc.tableLen, got, tc.want)
		}
	}
}

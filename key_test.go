// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package urkel

import (
	"bytes"
	"math/rand"
	"testing"
	"testing/quick"
)

func TestGetSetBitRoundTrip(t *testing.T) {
	f := func(seed []byte, bitIdx uint16, val bool) bool {
		if len(seed) == 0 {
			return true
		}
		total := Depth(len(seed) * 8)
		n := Depth(int(bitIdx)) % total

		k := Key(append([]byte(nil), seed...))
		before := make([]bool, total)
		for i := Depth(0); i < total; i++ {
			before[i] = k.GetBit(i)
		}

		out := k.SetBit(n, val)
		if out.GetBit(n) != val {
			return false
		}
		for i := Depth(0); i < total; i++ {
			if i == n {
				continue
			}
			if out.GetBit(i) != before[i] {
				return false
			}
		}
		// k itself must be untouched.
		return bytes.Equal(k, seed)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSetBitGrowsBuffer(t *testing.T) {
	k := Key{0xff}
	out := k.SetBit(23, true)
	if len(out) != 3 {
		t.Fatalf("expected 3 bytes, got %d", len(out))
	}
	if !out.GetBit(23) {
		t.Fatal("expected bit 23 to be set")
	}
	if len(k) != 1 {
		t.Fatal("original key was mutated")
	}
}

func TestSplitMergeInverse(t *testing.T) {
	f := func(seed []byte, cutIdx uint16) bool {
		if len(seed) == 0 {
			return true
		}
		n := Depth(len(seed) * 8)
		m := Depth(int(cutIdx) % (int(n) + 1))

		k := Key(seed)
		prefix, suffix := k.Split(m, n)
		merged := prefix.Merge(m, suffix, n-m)

		for i := Depth(0); i < n; i++ {
			if merged.GetBit(i) != k.GetBit(i) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// TestSplitAtBitThree is scenario S5 of the specification.
func TestSplitAtBitThree(t *testing.T) {
	k := Key{0xF0, 0x0F}
	prefix, suffix := k.Split(3, 16)

	if !bytes.Equal(prefix, []byte{0xE0}) {
		t.Fatalf("prefix = %x, want e0", prefix)
	}
	if !bytes.Equal(suffix, []byte{0x80, 0x78}) {
		t.Fatalf("suffix = %x, want 8078", suffix)
	}
}

func TestCommonPrefixLenMonotone(t *testing.T) {
	f := func(a, b []byte) bool {
		na := Depth(len(a) * 8)
		nb := Depth(len(b) * 8)
		cpl := Key(a).CommonPrefixLen(na, Key(b), nb)

		min := na
		if nb < min {
			min = nb
		}
		return cpl <= min
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestCommonPrefixLenFullMatchWhenPrefixed(t *testing.T) {
	base := make([]byte, 4+rand.Intn(8))
	rand.Read(base)
	longer := append(append([]byte(nil), base...), byte(rand.Intn(256)))

	cpl := Key(base).CommonPrefixLen(Depth(len(base)*8), Key(longer), Depth(len(longer)*8))
	if cpl != Depth(len(base)*8) {
		t.Fatalf("cpl = %d, want %d", cpl, len(base)*8)
	}
}

func TestAppendBit(t *testing.T) {
	k := Key{0x00}
	out := k.AppendBit(8, true)
	if len(out) != 2 {
		t.Fatalf("expected 2 bytes, got %d", len(out))
	}
	if !out.GetBit(8) {
		t.Fatal("expected appended bit to be set")
	}
}

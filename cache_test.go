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

import "testing"

func TestCountingCacheAssignsGenerations(t *testing.T) {
	c := NewCountingCache()

	a := NullPointer()
	b := NullPointer()

	ga := c.Get(a)
	gb := c.Get(b)
	if ga == gb {
		t.Fatal("expected distinct generations for distinct items")
	}

	// Repeated Get on the same item returns the already-assigned slot.
	if again := c.Get(a); again != ga {
		t.Fatalf("Get not idempotent: got %v, want %v", again, ga)
	}
}

func TestCountingCacheRemoveClearsSlot(t *testing.T) {
	c := NewCountingCache()
	p := NullPointer()
	c.Get(p)
	c.Remove(p)
	if p.GetCacheExtra() != nil {
		t.Fatal("expected cache slot to be cleared after Remove")
	}
}

func TestCountingCacheUpdateAssignsIfMissing(t *testing.T) {
	c := NewCountingCache()
	v := NewValuePointer(Value{0x01})
	if v.GetCacheExtra() != nil {
		t.Fatal("expected fresh value pointer to have no cache slot")
	}
	c.Update(v)
	if v.GetCacheExtra() == nil {
		t.Fatal("expected Update to assign a cache slot")
	}
}

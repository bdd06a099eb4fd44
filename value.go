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

// Value is the byte payload held by a leaf.
type Value []byte

// ValuePointer is an owned, cacheable value cell: an optional byte
// blob together with a content hash and a clean flag asserting that
// the hash matches the current value. A nil Value denotes the
// canonical empty value, whose hash is EmptyHash.
type ValuePointer struct {
	Clean bool
	Hash  Hash
	Value Value

	cacheExtra CacheExtra
}

// NewValuePointer constructs a dirty value cell holding v.
func NewValuePointer(v Value) *ValuePointer {
	return &ValuePointer{Value: v}
}

// UpdateHash recomputes Hash from the current Value and marks the
// cell clean.
func (v *ValuePointer) UpdateHash() {
	if v.Value == nil {
		v.Hash = EmptyHash
	} else {
		v.Hash = digest(v.Value)
	}
	v.Clean = true
}

// Validate recomputes the hash and fails with HashMismatch if it does
// not equal expected.
func (v *ValuePointer) Validate(expected Hash) error {
	v.UpdateHash()
	if v.Hash != expected {
		return &HashMismatchError{Expected: expected, Computed: v.Hash}
	}
	return nil
}

// Extract returns a clean deep copy of (Hash, Value) with a fresh
// cache slot. It requires the cell to be clean.
func (v *ValuePointer) Extract() *ValuePointer {
	if !v.Clean {
		panic(panicExtractDirtyValue)
	}
	return &ValuePointer{
		Clean: true,
		Hash:  v.Hash,
		Value: cloneValue(v.Value),
	}
}

// Copy makes a deep copy of the cell regardless of its clean flag,
// used when sharing a leaf across a sibling snapshot boundary.
func (v *ValuePointer) Copy() *ValuePointer {
	return &ValuePointer{
		Clean: v.Clean,
		Hash:  v.Hash,
		Value: cloneValue(v.Value),
	}
}

func cloneValue(v Value) Value {
	if v == nil {
		return nil
	}
	out := make(Value, len(v))
	copy(out, v)
	return out
}

// GetCacheExtra returns the opaque cache slot associated with this
// value cell.
func (v *ValuePointer) GetCacheExtra() CacheExtra { return v.cacheExtra }

// SetCacheExtra updates the opaque cache slot.
func (v *ValuePointer) SetCacheExtra(extra CacheExtra) { v.cacheExtra = extra }

// GetCachedSize returns the value's byte length, or 0 for the empty
// value; it is the weight the Cache capability should charge for this
// entry.
func (v *ValuePointer) GetCachedSize() int {
	return len(v.Value)
}

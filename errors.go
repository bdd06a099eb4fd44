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
	"errors"
	"fmt"
)

// Recoverable errors: a validate call, or a tree operation built on
// top of the core, returns one of these to its caller instead of
// panicking.
var (
	// ErrDirtyPointers is returned when InternalNode.Validate is
	// called while one of its three child pointers is still dirty.
	ErrDirtyPointers = errors.New("urkel: dirty pointers")

	// ErrDirtyValue is returned when LeafNode.Validate is called
	// while its value cell is still dirty.
	ErrDirtyValue = errors.New("urkel: dirty value")

	// ErrKeyNotFound is returned by Tree.Get when the walk runs off
	// the tree before reaching a leaf with the requested key.
	// Tree.Remove does not return it: removing an absent key is a
	// no-op.
	ErrKeyNotFound = errors.New("urkel: key not found")
)

// HashMismatchError is returned by Validate when the recomputed hash
// does not match the hash the caller expected.
type HashMismatchError struct {
	Expected Hash
	Computed Hash
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("urkel: hash mismatch: expected %s, computed %s", e.Expected, e.Computed)
}

// The following conditions are programmer errors: the caller violated
// one of the invariants in the data model (a dirty entity was
// extracted, an unresolved pointer's node was read, or copy_leaf_ptr
// was asked to peer into an internal node). They panic rather than
// return an error, mirroring the teacher implementation's own
// "urkel: ..." panics for the equivalent conditions.
const (
	panicExtractOnDirty     = "urkel: extract called on dirty node"
	panicExtractDirtyPtr    = "urkel: extract called on dirty pointer"
	panicExtractDirtyValue  = "urkel: extract called on dirty value"
	panicCopyLeafDirty      = "urkel: copy_leaf_ptr called on dirty pointer"
	panicCopyLeafNotLeaf    = "urkel: copy_leaf_ptr called on a non-leaf pointer"
	panicUnresolvedAccess   = "urkel: get_node called on pointer without a node"
)

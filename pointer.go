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

// NodePointer is the sole structural link between nodes: a handle
// carrying a hash identity and, optionally, a resolved node body. It
// is the unit of lazy resolution (via NodeStore) and of caching, and
// the object through which content is structurally shared across tree
// versions produced by Extract.
//
// A pointer is null iff Hash == EmptyHash, in which case Node must be
// nil. It is resolved iff Node is non-nil, in which case Hash equals
// Node's hash whenever Clean is true. Otherwise, if non-null and Node
// is nil, it is unresolved: only Hash is known, and resolving it is
// the job of an external NodeStore.
type NodePointer struct {
	Clean bool
	Hash  Hash
	Node  Node

	cacheExtra CacheExtra
}

// NullPointer constructs a clean, null pointer.
func NullPointer() *NodePointer {
	return &NodePointer{
		Clean: true,
		Hash:  EmptyHash,
	}
}

// IsNull reports whether p identifies the empty subtree.
func (p *NodePointer) IsNull() bool {
	return p.Hash == EmptyHash
}

// HasNode reports whether p is non-null and already resolved.
func (p *NodePointer) HasNode() bool {
	return !p.IsNull() && p.Node != nil
}

// GetNode returns the resolved node body. Calling it on a pointer that
// has not been resolved (see NodeStore) is a programmer error: the
// caller must resolve first.
func (p *NodePointer) GetNode() Node {
	if p.Node == nil {
		panic(panicUnresolvedAccess)
	}
	return p.Node
}

// Extract returns a fresh pointer (Clean, Hash) with Node absent: a
// hash-only skeleton, the primitive used to build Merkle proofs and
// cheap snapshots. It requires p to be clean.
func (p *NodePointer) Extract() *NodePointer {
	if !p.Clean {
		panic(panicExtractDirtyPtr)
	}
	return &NodePointer{
		Clean: true,
		Hash:  p.Hash,
	}
}

// CopyLeafPtr requires p to be clean; if p is not resolved, it returns
// a null pointer. Otherwise the pointed-to node must be a *LeafNode
// and CopyLeafPtr returns a fresh pointer whose Node is a deep copy of
// that leaf. It is the single operation that peers into the Node
// interface's concrete variant, and panics if invoked on an
// *InternalNode target.
func (p *NodePointer) CopyLeafPtr() *NodePointer {
	if !p.HasNode() {
		return NullPointer()
	}
	if !p.Clean {
		panic(panicCopyLeafDirty)
	}

	leaf, ok := p.Node.(*LeafNode)
	if !ok {
		panic(panicCopyLeafNotLeaf)
	}

	copied := leaf.Copy()
	return &NodePointer{
		Clean: true,
		Hash:  p.Hash,
		Node:  copied,
	}
}

// Equal reports whether p and other identify the same content. If
// both are clean, they compare equal iff their hashes match
// (structural sharing is transparent). A clean pointer never equals a
// dirty one, even over the same node. Otherwise both must have a
// resolved body and those bodies must be equal by identity — per the
// specification's open question, a dirty pointer is never equal to an
// unresolved one, and dirty-vs-dirty equality collapses to comparing
// the underlying Node references directly rather than their contents.
func (p *NodePointer) Equal(other *NodePointer) bool {
	if p.Clean && other.Clean {
		return p.Hash == other.Hash
	}
	if p.Clean != other.Clean {
		return false
	}
	return p.Node != nil && p.Node == other.Node
}

// GetCacheExtra returns the opaque cache slot associated with this
// pointer.
func (p *NodePointer) GetCacheExtra() CacheExtra { return p.cacheExtra }

// SetCacheExtra updates the opaque cache slot.
func (p *NodePointer) SetCacheExtra(extra CacheExtra) { p.cacheExtra = extra }

// GetCachedSize always reports 1: pointers are charged as a single
// unit against whatever weight the Cache capability's eviction policy
// assigns, regardless of the size of the subtree they identify.
func (p *NodePointer) GetCachedSize() int { return 1 }

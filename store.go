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
	"context"
	"fmt"
	"sync"
)

// NodeStore is the external capability used to resolve an unresolved
// pointer's body. The tree invokes it only when traversal reaches an
// unresolved pointer; it never writes to the store. Write-back after
// a Commit is the responsibility of a higher layer, not this core.
type NodeStore interface {
	// GetNode returns the node body identified by id under root,
	// which must hash to expected. It returns an error if no such
	// node is known to the store or the resolved body does not match
	// expected.
	GetNode(ctx context.Context, root Root, id NodeID, expected Hash) (Node, error)
}

// ErrNodeNotFound is returned by a NodeStore when no node is on file
// for the requested hash.
type ErrNodeNotFound struct {
	Hash Hash
}

func (e *ErrNodeNotFound) Error() string {
	return fmt.Sprintf("urkel: node not found for hash %s", e.Hash)
}

// MemoryNodeStore is a reference NodeStore backed by an in-memory map
// keyed by hash. It exists to exercise the NodeStore capability in
// tests and as a worked example of the contract; it is not a
// persistence layer.
type MemoryNodeStore struct {
	nodes sync.Map // Hash -> Node
}

// NewMemoryNodeStore constructs an empty store.
func NewMemoryNodeStore() *MemoryNodeStore {
	return &MemoryNodeStore{}
}

// Put registers node under its own (clean) hash, making it resolvable
// by a later GetNode call. It is the caller's job to have called
// UpdateHash on node first.
func (s *MemoryNodeStore) Put(node Node) {
	s.nodes.Store(node.GetHash(), node)
}

// GetNode implements NodeStore.
func (s *MemoryNodeStore) GetNode(_ context.Context, _ Root, _ NodeID, expected Hash) (Node, error) {
	v, ok := s.nodes.Load(expected)
	if !ok {
		return nil, &ErrNodeNotFound{Hash: expected}
	}
	node := v.(Node)
	if node.GetHash() != expected {
		return nil, &HashMismatchError{Expected: expected, Computed: node.GetHash()}
	}
	return node, nil
}

// Resolve fetches ptr's node body from store if ptr is currently
// unresolved, populating ptr.Node in place. It is a no-op for null or
// already-resolved pointers.
func Resolve(ctx context.Context, store NodeStore, root Root, id NodeID, ptr *NodePointer) error {
	if ptr.IsNull() || ptr.HasNode() {
		return nil
	}
	node, err := store.GetNode(ctx, root, id, ptr.Hash)
	if err != nil {
		return err
	}
	ptr.Node = node
	return nil
}

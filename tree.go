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
	"context"
)

// Tree is a single-owner, single-threaded handle onto a committed-or-
// dirty urkel tree. It owns a root NodePointer and provides the
// mutating algorithms (Get, Insert, Remove, Commit) that are layered,
// straightforwardly, over the primitives specified in node.go,
// pointer.go, key.go and value.go; their correctness is entirely
// determined by those primitives' contracts.
//
// A Tree must not be shared across goroutines. Independent Trees may
// be driven concurrently; see CommitAll (batch.go) for a worked
// example.
type Tree struct {
	namespace Namespace
	round     uint64
	root      *NodePointer

	store NodeStore
	cache Cache
}

// NewTree constructs an empty tree at round, resolving unresolved
// pointers against store and recording cache bookkeeping in cache.
// Either may be nil: a nil store means every pointer must already be
// resolved (no lazy resolution is possible), and a nil cache means no
// cache bookkeeping is performed.
func NewTree(namespace Namespace, round uint64, store NodeStore, cache Cache) *Tree {
	return &Tree{
		namespace: namespace,
		round:     round,
		root:      NullPointer(),
		store:     store,
		cache:     cache,
	}
}

// rootDescriptor returns the tree's namespace, round and the root
// pointer's current Hash. If the tree has dirty nodes, Hash does not
// reflect the pending mutation: it is the root pointer's stale hash,
// which is the zero hash when a mutation has installed a fresh root
// pointer.
func (t *Tree) rootDescriptor() Root {
	return Root{Namespace: t.namespace, Round: t.round, Hash: t.root.Hash}
}

// SetRound advances the round stamped into nodes created by future
// Insert calls. It does not affect already-constructed nodes.
func (t *Tree) SetRound(round uint64) { t.round = round }

func (t *Tree) resolve(ctx context.Context, id NodeID, ptr *NodePointer) error {
	if ptr.IsNull() || ptr.HasNode() {
		return nil
	}
	if t.store == nil {
		panic(panicUnresolvedAccess)
	}
	if err := Resolve(ctx, t.store, t.rootDescriptor(), id, ptr); err != nil {
		return err
	}
	if t.cache != nil {
		t.cache.Get(ptr)
	}
	return nil
}

// touchValue registers v with the cache, or re-touches it if already
// registered, whenever a leaf's value cell is read by a Tree
// operation or a new leaf is created.
func (t *Tree) touchValue(v *ValuePointer) {
	if t.cache != nil {
		t.cache.Get(v)
	}
}

// updateValue notifies the cache that v's weight (GetCachedSize) may
// have changed, because a Tree operation just overwrote its content.
func (t *Tree) updateValue(v *ValuePointer) {
	if t.cache != nil {
		t.cache.Update(v)
	}
}

// Get returns the value stored under key, or ErrKeyNotFound if no
// such key is present.
func (t *Tree) Get(ctx context.Context, key Key) (Value, error) {
	keyBits := key.BitLength()
	ptr := t.root
	depth := Depth(0)

	for {
		id := NodeID{Path: key, BitDepth: depth}
		if err := t.resolve(ctx, id, ptr); err != nil {
			return nil, err
		}
		if ptr.IsNull() {
			return nil, ErrKeyNotFound
		}

		switch n := ptr.GetNode().(type) {
		case *LeafNode:
			if bytes.Equal(n.Key, key) {
				t.touchValue(n.Value)
				return cloneValue(n.Value.Value), nil
			}
			return nil, ErrKeyNotFound
		case *InternalNode:
			remaining := keyBits - depth
			_, keySuffix := key.Split(depth, keyBits)
			cpl := keySuffix.CommonPrefixLen(remaining, n.Label, n.LabelBitLength)
			if cpl < n.LabelBitLength {
				return nil, ErrKeyNotFound
			}
			if remaining == cpl {
				ptr = n.LeafNode
				depth += cpl
				continue
			}
			depth += n.LabelBitLength
			if keySuffix.GetBit(cpl) {
				ptr = n.Right
			} else {
				ptr = n.Left
			}
		}
	}
}

// Insert inserts or updates the value stored under key.
func (t *Tree) Insert(ctx context.Context, key Key, value Value) error {
	keyBits := key.BitLength()
	newRoot, err := t.insertAt(ctx, t.root, 0, key, keyBits, value)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

func (t *Tree) insertAt(ctx context.Context, ptr *NodePointer, depth Depth, key Key, keyBits Depth, value Value) (*NodePointer, error) {
	id := NodeID{Path: key, BitDepth: depth}
	if err := t.resolve(ctx, id, ptr); err != nil {
		return nil, err
	}

	if ptr.IsNull() {
		leaf := NewLeafNode(t.round, append(Key(nil), key...), value)
		t.touchValue(leaf.Value)
		return &NodePointer{Node: leaf}, nil
	}

	switch n := ptr.GetNode().(type) {
	case *LeafNode:
		if bytes.Equal(n.Key, key) {
			n.Value.Value = cloneValue(value)
			n.Value.Clean = false
			n.Clean = false
			ptr.Clean = false
			t.updateValue(n.Value)
			return ptr, nil
		}
		return t.splitLeaf(ptr, depth, key, keyBits, value)
	case *InternalNode:
		remaining := keyBits - depth
		_, keySuffix := key.Split(depth, keyBits)
		cpl := keySuffix.CommonPrefixLen(remaining, n.Label, n.LabelBitLength)

		if cpl < n.LabelBitLength {
			return t.splitInternal(ptr, n, depth, keySuffix, remaining, key, keyBits, value)
		}

		newDepth := depth + n.LabelBitLength
		if remaining == cpl {
			newLeaf, err := t.insertAt(ctx, n.LeafNode, newDepth, key, keyBits, value)
			if err != nil {
				return nil, err
			}
			n.LeafNode = newLeaf
		} else if keySuffix.GetBit(cpl) {
			newRight, err := t.insertAt(ctx, n.Right, newDepth, key, keyBits, value)
			if err != nil {
				return nil, err
			}
			n.Right = newRight
		} else {
			newLeft, err := t.insertAt(ctx, n.Left, newDepth, key, keyBits, value)
			if err != nil {
				return nil, err
			}
			n.Left = newLeft
		}
		n.Clean = false
		ptr.Clean = false
		return ptr, nil
	default:
		panic("urkel: unknown node variant")
	}
}

// splitLeaf handles inserting a new key that diverges from the key
// already held by the leaf at ptr, replacing ptr with a fresh internal
// node holding both. A single split suffices regardless of how deep
// the common prefix runs, which is exactly what label compression
// buys: no chain of single-bit internal nodes is ever built.
func (t *Tree) splitLeaf(ptr *NodePointer, depth Depth, key Key, keyBits Depth, value Value) (*NodePointer, error) {
	existing := ptr.GetNode().(*LeafNode)
	existingBits := existing.Key.BitLength()

	_, existingSuffix := existing.Key.Split(depth, existingBits)
	_, newSuffix := key.Split(depth, keyBits)

	cpl := existingSuffix.CommonPrefixLen(existingBits-depth, newSuffix, keyBits-depth)
	label, _ := newSuffix.Split(cpl, keyBits-depth)

	newInternal := NewInternalNode(t.round, label, cpl)
	newLeaf := NewLeafNode(t.round, append(Key(nil), key...), value)
	t.touchValue(newLeaf.Value)
	newLeafPtr := &NodePointer{Node: newLeaf}
	newDepth := depth + cpl

	switch {
	case existingBits == newDepth:
		// The old key ends exactly at the split point; it takes the
		// leaf-node slot, and the new key (necessarily longer, since
		// the keys differ) becomes a child.
		newInternal.LeafNode = ptr
		if newSuffix.GetBit(cpl) {
			newInternal.Right = newLeafPtr
		} else {
			newInternal.Left = newLeafPtr
		}
	case keyBits == newDepth:
		newInternal.LeafNode = newLeafPtr
		if existingSuffix.GetBit(cpl) {
			newInternal.Right = ptr
		} else {
			newInternal.Left = ptr
		}
	default:
		if existingSuffix.GetBit(cpl) {
			newInternal.Right = ptr
			newInternal.Left = newLeafPtr
		} else {
			newInternal.Left = ptr
			newInternal.Right = newLeafPtr
		}
	}

	return &NodePointer{Node: newInternal}, nil
}

// splitInternal handles inserting a key that diverges from an
// InternalNode's label before the label is exhausted: the node is
// split into a new internal node (holding the shared prefix) with the
// old node, relabeled to the remaining suffix, as one child and the
// new key as the other.
func (t *Tree) splitInternal(ptr *NodePointer, n *InternalNode, depth Depth, keySuffix Key, remaining Depth, key Key, keyBits Depth, value Value) (*NodePointer, error) {
	cpl := keySuffix.CommonPrefixLen(remaining, n.Label, n.LabelBitLength)

	label, _ := keySuffix.Split(cpl, remaining)
	newInternal := NewInternalNode(t.round, label, cpl)

	_, oldLabelSuffix := n.Label.Split(cpl, n.LabelBitLength)
	n.Label = oldLabelSuffix
	n.LabelBitLength -= cpl
	n.Clean = false
	ptr.Clean = false

	newLeaf := NewLeafNode(t.round, append(Key(nil), key...), value)
	t.touchValue(newLeaf.Value)
	newLeafPtr := &NodePointer{Node: newLeaf}

	if remaining == cpl {
		newInternal.LeafNode = newLeafPtr
		if oldLabelSuffix.GetBit(0) {
			newInternal.Right = ptr
		} else {
			newInternal.Left = ptr
		}
	} else {
		if oldLabelSuffix.GetBit(0) {
			newInternal.Right = ptr
			newInternal.Left = newLeafPtr
		} else {
			newInternal.Left = ptr
			newInternal.Right = newLeafPtr
		}
	}

	return &NodePointer{Node: newInternal}, nil
}

// Remove deletes the value stored under key, if any. It does not fail
// when the key is absent and leaves the tree unchanged in that case;
// it never returns ErrKeyNotFound (only Get does).
func (t *Tree) Remove(ctx context.Context, key Key) error {
	keyBits := key.BitLength()
	newRoot, _, err := t.removeAt(ctx, t.root, 0, key, keyBits)
	if err != nil {
		return err
	}
	t.root = newRoot
	return nil
}

func (t *Tree) removeAt(ctx context.Context, ptr *NodePointer, depth Depth, key Key, keyBits Depth) (*NodePointer, bool, error) {
	id := NodeID{Path: key, BitDepth: depth}
	if err := t.resolve(ctx, id, ptr); err != nil {
		return nil, false, err
	}
	if ptr.IsNull() {
		return ptr, false, nil
	}

	switch n := ptr.GetNode().(type) {
	case *LeafNode:
		if bytes.Equal(n.Key, key) {
			return NullPointer(), true, nil
		}
		return ptr, false, nil
	case *InternalNode:
		remaining := keyBits - depth
		_, keySuffix := key.Split(depth, keyBits)
		cpl := keySuffix.CommonPrefixLen(remaining, n.Label, n.LabelBitLength)
		if cpl < n.LabelBitLength {
			return ptr, false, nil
		}

		newDepth := depth + n.LabelBitLength
		removed := false
		if remaining == cpl {
			if err := t.resolve(ctx, NodeID{Path: key, BitDepth: newDepth}, n.LeafNode); err != nil {
				return nil, false, err
			}
			if !n.LeafNode.IsNull() && bytes.Equal(n.LeafNode.GetNode().(*LeafNode).Key, key) {
				n.LeafNode = NullPointer()
				n.Clean = false
				ptr.Clean = false
				removed = true
			}
		} else if keySuffix.GetBit(cpl) {
			newRight, ok, err := t.removeAt(ctx, n.Right, newDepth, key, keyBits)
			if err != nil {
				return nil, false, err
			}
			if ok {
				n.Right = newRight
				n.Clean = false
				ptr.Clean = false
				removed = true
			}
		} else {
			newLeft, ok, err := t.removeAt(ctx, n.Left, newDepth, key, keyBits)
			if err != nil {
				return nil, false, err
			}
			if ok {
				n.Left = newLeft
				n.Clean = false
				ptr.Clean = false
				removed = true
			}
		}

		if !removed {
			return ptr, false, nil
		}
		newPtr, err := t.collapse(ctx, ptr, n, key, newDepth)
		if err != nil {
			return nil, false, err
		}
		return newPtr, true, nil
	default:
		panic("urkel: unknown node variant")
	}
}

// collapse restores path compression after a removal: an internal node
// left holding only one live child is replaced by that child (merging
// labels, when the surviving child is itself internal). childDepth is
// the bit depth at which n's children live, needed to address the
// surviving child if mergeChild must resolve it first.
func (t *Tree) collapse(ctx context.Context, ptr *NodePointer, n *InternalNode, key Key, childDepth Depth) (*NodePointer, error) {
	live := 0
	if !n.LeafNode.IsNull() {
		live++
	}
	if !n.Left.IsNull() {
		live++
	}
	if !n.Right.IsNull() {
		live++
	}

	switch live {
	case 0:
		return NullPointer(), nil
	case 1:
		switch {
		case !n.LeafNode.IsNull():
			return n.LeafNode, nil
		case !n.Left.IsNull():
			return t.mergeChild(ctx, n, n.Left, key, childDepth)
		default:
			return t.mergeChild(ctx, n, n.Right, key, childDepth)
		}
	default:
		return ptr, nil
	}
}

// mergeChild folds n's label onto child's label (if child is itself
// internal; a leaf already carries its full key and needs no
// relabeling) and returns the pointer that should take n's place. An
// unresolved child is force-resolved first: splicing it in with only
// its hash known would strand n's label bits, since the resolver has
// no way to learn about them once the child is later fetched on its
// own from the store.
func (t *Tree) mergeChild(ctx context.Context, n *InternalNode, child *NodePointer, key Key, childDepth Depth) (*NodePointer, error) {
	if err := t.resolve(ctx, NodeID{Path: key, BitDepth: childDepth}, child); err != nil {
		return nil, err
	}
	if grandchild, ok := child.GetNode().(*InternalNode); ok {
		grandchild.Label = n.Label.Merge(n.LabelBitLength, grandchild.Label, grandchild.LabelBitLength)
		grandchild.LabelBitLength += n.LabelBitLength
		grandchild.Clean = false
		child.Clean = false
	}
	return child, nil
}

// Commit recomputes the hash of every dirty node reachable from the
// root, bottom-up, so that the Root it returns is guaranteed to name a
// tree in which every reachable node is clean (spec.md §5's ordering
// rule).
func (t *Tree) Commit(ctx context.Context) (Root, error) {
	if err := commitPointer(t.root); err != nil {
		return Root{}, err
	}
	return t.rootDescriptor(), nil
}

func commitPointer(ptr *NodePointer) error {
	if ptr == nil || ptr.Clean {
		return nil
	}

	switch n := ptr.Node.(type) {
	case *LeafNode:
		if !n.Value.Clean {
			n.Value.UpdateHash()
		}
		n.UpdateHash()
	case *InternalNode:
		if err := commitPointer(n.LeafNode); err != nil {
			return err
		}
		if err := commitPointer(n.Left); err != nil {
			return err
		}
		if err := commitPointer(n.Right); err != nil {
			return err
		}
		n.UpdateHash()
	default:
		panic("urkel: unknown node variant")
	}

	ptr.Hash = ptr.Node.GetHash()
	ptr.Clean = true
	return nil
}

// Extract returns NodePointer.Extract of the root pointer: a clean,
// hash-only pointer carrying the committed root hash and no node body.
// The tree must be committed first: it panics if the root pointer is
// dirty, which every uncommitted Insert or Remove leaves it.
func (t *Tree) Extract() *NodePointer {
	return t.root.Extract()
}

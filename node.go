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

// NodeKind distinguishes internal and leaf nodes. The integer values
// are also used as the leading byte of the node-hash preimage; 0x02 is
// reserved as a discriminator for "no node" used only by higher layers
// that serialize subtrees, never emitted by Node.UpdateHash here.
type NodeKind byte

const (
	NodeKindLeaf     NodeKind = 0x00
	NodeKindInternal NodeKind = 0x01
	NodeKindNone     NodeKind = 0x02
)

// Node is the common interface implemented by every node-like object
// in the tree: InternalNode and LeafNode are its only variants (the
// NodeBox sum type of the specification is expressed here simply as
// this interface, since Go has no tagged-union primitive).
type Node interface {
	// IsClean reports whether Hash currently matches the node's
	// contents.
	IsClean() bool

	// GetHash returns the node's (possibly stale, if dirty) hash.
	GetHash() Hash

	// UpdateHash recomputes the node's hash from its current
	// contents and marks it clean.
	UpdateHash()

	// Validate recomputes the hash and compares it against expected,
	// recursing no further than this node's own immediate fields.
	Validate(expected Hash) error

	// Extract produces a hash-only (or, for a leaf reached through a
	// leaf pointer, value-bearing) clean copy of this node, suitable
	// for structural sharing across tree versions. It panics if the
	// node is dirty.
	Extract() Node
}

// InternalNode is an internal tree node: a bit-label on its incoming
// edge, an optional leaf for a key that terminates exactly at this
// node's depth, and two children.
type InternalNode struct {
	Clean          bool
	Round          uint64
	Hash           Hash
	Label          Key
	LabelBitLength Depth
	LeafNode       *NodePointer
	Left           *NodePointer
	Right          *NodePointer
}

// NewInternalNode constructs a dirty internal node with null leaf,
// left and right pointers.
func NewInternalNode(round uint64, label Key, labelBitLength Depth) *InternalNode {
	return &InternalNode{
		Round:          round,
		Label:          label,
		LabelBitLength: labelBitLength,
		LeafNode:       NullPointer(),
		Left:           NullPointer(),
		Right:          NullPointer(),
	}
}

func (n *InternalNode) IsClean() bool { return n.Clean }
func (n *InternalNode) GetHash() Hash { return n.Hash }

// UpdateHash computes:
//
//	digest(0x01 || be64(round) || be16(labelBitLength) || label || leafNode.Hash || left.Hash || right.Hash)
func (n *InternalNode) UpdateHash() {
	n.Hash = digest(
		[]byte{byte(NodeKindInternal)},
		be8(n.Round),
		be2(n.LabelBitLength),
		[]byte(n.Label),
		n.LeafNode.Hash[:],
		n.Left.Hash[:],
		n.Right.Hash[:],
	)
	n.Clean = true
}

// Validate does not recurse: children must have been validated
// independently before calling this.
func (n *InternalNode) Validate(expected Hash) error {
	if !n.LeafNode.Clean || !n.Left.Clean || !n.Right.Clean {
		return ErrDirtyPointers
	}
	n.UpdateHash()
	if n.Hash != expected {
		return &HashMismatchError{Expected: expected, Computed: n.Hash}
	}
	return nil
}

// Extract produces a clean snapshot sharing the same label/round/hash,
// a deep-copied leaf pointer (see NodePointer.CopyLeafPtr) and
// hash-only extracted left/right pointers.
func (n *InternalNode) Extract() Node {
	if !n.Clean {
		panic(panicExtractOnDirty)
	}
	return &InternalNode{
		Clean:          true,
		Round:          n.Round,
		Hash:           n.Hash,
		Label:          append(Key(nil), n.Label...),
		LabelBitLength: n.LabelBitLength,
		LeafNode:       n.LeafNode.CopyLeafPtr(),
		Left:           n.Left.Extract(),
		Right:          n.Right.Extract(),
	}
}

// LeafNode is a leaf holding a complete key and a value cell; path
// compression lives entirely in InternalNode labels, never here.
type LeafNode struct {
	Clean bool
	Round uint64
	Hash  Hash
	Key   Key
	Value *ValuePointer
}

// NewLeafNode constructs a dirty leaf for key holding value.
func NewLeafNode(round uint64, key Key, value Value) *LeafNode {
	return &LeafNode{
		Round: round,
		Key:   key,
		Value: NewValuePointer(value),
	}
}

func (n *LeafNode) IsClean() bool { return n.Clean }
func (n *LeafNode) GetHash() Hash { return n.Hash }

// UpdateHash computes digest(0x00 || be64(round) || key || value.Hash).
func (n *LeafNode) UpdateHash() {
	n.Hash = digest(
		[]byte{byte(NodeKindLeaf)},
		be8(n.Round),
		[]byte(n.Key),
		n.Value.Hash[:],
	)
	n.Clean = true
}

func (n *LeafNode) Validate(expected Hash) error {
	if !n.Value.Clean {
		return ErrDirtyValue
	}
	n.UpdateHash()
	if n.Hash != expected {
		return &HashMismatchError{Expected: expected, Computed: n.Hash}
	}
	return nil
}

func (n *LeafNode) Extract() Node {
	if !n.Clean {
		panic(panicExtractOnDirty)
	}
	return &LeafNode{
		Clean: true,
		Round: n.Round,
		Hash:  n.Hash,
		Key:   append(Key(nil), n.Key...),
		Value: n.Value.Extract(),
	}
}

// Copy makes a field-wise deep copy of the leaf, used when sharing a
// leaf across an internal-node snapshot boundary (see
// NodePointer.CopyLeafPtr). Unlike Extract it is permitted regardless
// of the leaf's clean flag.
func (n *LeafNode) Copy() *LeafNode {
	return &LeafNode{
		Clean: n.Clean,
		Round: n.Round,
		Hash:  n.Hash,
		Key:   append(Key(nil), n.Key...),
		Value: n.Value.Copy(),
	}
}

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
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// Namespace is an opaque 32-byte chain/runtime identifier qualifying a
// Root.
type Namespace [32]byte

// Bytes returns ns as a byte slice.
func (ns Namespace) Bytes() []byte { return ns[:] }

// Root is the externally visible identifier of a committed tree
// state. Two roots are equal iff all three fields match.
type Root struct {
	Namespace Namespace
	Round     uint64
	Hash      Hash
}

// rootRLP is the wire shape of Root: the specification's field-named
// serde contract (ns, round, hash) has no direct RLP analogue (RLP
// encodes position, not field names), so field order stands in for
// the name mapping, exactly as the teacher's own node Serialize()
// encodes InternalNode/LeafNode by RLP field order rather than name.
type rootRLP struct {
	Namespace []byte
	Round     uint64
	Hash      []byte
}

// EncodeRLP implements rlp.Encoder.
func (r Root) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, rootRLP{
		Namespace: r.Namespace.Bytes(),
		Round:     r.Round,
		Hash:      r.Hash[:],
	})
}

// DecodeRLP implements rlp.Decoder.
func (r *Root) DecodeRLP(s *rlp.Stream) error {
	var wire rootRLP
	if err := s.Decode(&wire); err != nil {
		return err
	}
	copy(r.Namespace[:], wire.Namespace)
	r.Round = wire.Round
	r.Hash = common.BytesToHash(wire.Hash)
	return nil
}

// NodeID is a root-relative identifier naming a node by position
// rather than holding it: the bit-path taken from the root, and the
// bit-depth reached. It is purely positional and is never itself
// stored in the tree.
type NodeID struct {
	Path     Key
	BitDepth Depth
}

// RootNodeID returns the NodeID that identifies the tree root.
func RootNodeID() NodeID {
	return NodeID{Path: Key{}, BitDepth: 0}
}

// IsRoot reports whether id identifies the tree root.
func (id NodeID) IsRoot() bool {
	return id.BitDepth == 0 && len(id.Path) == 0
}

// AtBitDepth returns a copy of id with a different bit depth, sharing
// the same Path slice (no copy of the key bytes).
func (id NodeID) AtBitDepth(bitDepth Depth) NodeID {
	return NodeID{Path: id.Path, BitDepth: bitDepth}
}

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

import "math/bits"

// Depth is a bit-count. It bounds the maximum key length at 2^16 bits.
type Depth uint16

// toBytes returns the number of bytes needed to fit d bits.
func (d Depth) toBytes() int {
	size := d / 8
	if d%8 != 0 {
		return int(size) + 1
	}
	return int(size)
}

// Key is a variable-length byte buffer interpreted as a bit string.
// Its true length in bits is carried alongside it by every caller as a
// Depth value; Key itself never claims to know its own bit length.
// Bit i is the (i mod 8)-th most significant bit of byte i div 8: bit 0
// is the high bit of byte 0.
type Key []byte

// BitLength is a coarse upper bound on the number of bits a Key can
// hold given its current byte length. It is not the real bit length of
// any particular use of the key; callers track that separately.
func (k Key) BitLength() Depth {
	return Depth(len(k) * 8)
}

// GetBit returns bit index bit of k. The caller must ensure bit is
// within the bit length it associates with k.
func (k Key) GetBit(bit Depth) bool {
	return k[bit/8]&(1<<(7-(bit%8))) != 0
}

// SetBit returns a copy of k with bit index bit set to val. If bit
// falls beyond k's current byte length, the returned buffer is grown
// (zero-filled) to fit it. k is never mutated. SetBit does not know or
// update any external bit-length counter; that remains the caller's
// responsibility.
func (k Key) SetBit(bit Depth, val bool) Key {
	var out Key
	if int(bit) >= len(k)*8 {
		out = make(Key, int(bit)/8+1)
		copy(out, k)
	} else {
		out = make(Key, len(k))
		copy(out, k)
	}

	mask := byte(1 << (7 - (bit % 8)))
	if val {
		out[bit/8] |= mask
	} else {
		out[bit/8] &^= mask
	}
	return out
}

// AppendBit returns a new Key of bit length keyLen+1 equal to k (whose
// bit length is keyLen) with val appended as the new last bit.
func (k Key) AppendBit(keyLen Depth, val bool) Key {
	out := make(Key, (keyLen + 1).toBytes())
	copy(out, k)

	if val {
		out[keyLen/8] |= 0x80 >> (keyLen % 8)
	} else {
		out[keyLen/8] &^= 0x80 >> (keyLen % 8)
	}
	return out
}

// Split splits k (of bit length keyLen) at bit index n into a prefix of
// bit length n and a suffix of bit length keyLen-n. n must not exceed
// keyLen. The prefix's trailing sub-byte bits are masked to zero.
func (k Key) Split(n, keyLen Depth) (prefix, suffix Key) {
	if n > keyLen {
		panic("urkel: split point greater than key length")
	}

	prefixLen := n.toBytes()
	suffixLen := (keyLen - n).toBytes()
	prefix = make(Key, prefixLen)
	suffix = make(Key, suffixLen)

	copy(prefix, k[:n.toBytes()])

	// Clean the remainder of the last prefix byte.
	if n%8 != 0 {
		prefix[prefixLen-1] &= 0xff << (8 - n%8)
	}

	for i := 0; i < suffixLen; i++ {
		// Set the left chunk of the byte from k.
		suffix[i] = k[i+int(n)/8] << (n % 8)
		// ...and the right chunk, if there is a following byte in k.
		if n%8 != 0 && i+int(n)/8+1 != len(k) {
			suffix[i] |= k[i+int(n)/8+1] >> (8 - n%8)
		}
	}

	return prefix, suffix
}

// Merge returns the concatenation, bit-wise, of k (bit length keyLen)
// and k2 (bit length k2Len), producing a Key of bit length
// keyLen+k2Len. k2's bytes are placed starting at bit index keyLen,
// split across byte boundaries as needed.
func (k Key) Merge(keyLen Depth, k2 Key, k2Len Depth) Key {
	out := make(Key, (keyLen + k2Len).toBytes())
	copy(out, k)

	for i := 0; i < len(k2); i++ {
		// Set the right chunk of the previous byte.
		if keyLen%8 != 0 && len(k) > 0 {
			out[len(k)+i-1] |= k2[i] >> (keyLen % 8)
		}
		// ...and the next left chunk, if it still falls inside out.
		if len(k)+i < len(out) {
			out[len(k)+i] |= k2[i] << ((8 - keyLen%8) % 8)
		}
	}

	return out
}

// CommonPrefixLen returns the length, in bits, of the common prefix of
// k (bit length keyBitLen) and k2 (bit length k2BitLen). The result
// never exceeds min(keyBitLen, k2BitLen).
func (k Key) CommonPrefixLen(keyBitLen Depth, k2 Key, k2BitLen Depth) Depth {
	minLen := len(k2)
	if len(k) < minLen {
		minLen = len(k)
	}

	i := 0
	for i < minLen {
		if k[i] != k2[i] {
			break
		}
		i++
	}

	bitLength := Depth(i * 8)

	if i != len(k) && i != len(k2) {
		bitLength += Depth(bits.LeadingZeros8(k[i] ^ k2[i]))
	}

	if bitLength > keyBitLen {
		bitLength = keyBitLen
	}
	if bitLength > k2BitLen {
		bitLength = k2BitLen
	}
	return bitLength
}

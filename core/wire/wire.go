// Copyright (c) 2026 Keymaster Team
// sshkeys - SSH key codec and signing library
// This source code is licensed under the MIT license found in the LICENSE file.

// Package wire encodes and decodes the SSH wire primitives (RFC 4251 §5)
// used by every key format: uint32, string and mpint. It is purely
// syntactic and attaches no meaning to the fields it moves.
package wire

import (
	"encoding/binary"
	"math/big"

	"github.com/toeirei/sshkeys/core/keyerr"
)

// Reader walks a byte slice with a cursor. It never modifies the slice and
// returned byte strings alias it.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader { return &Reader{buf: b} }

// Offset is the cursor position.
func (r *Reader) Offset() int { return r.off }

// Len is the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.off }

// ReadBytes consumes exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, keyerr.At(keyerr.TruncatedInput, "wire.ReadBytes", r.off, "need %d bytes, have %d", n, r.Len())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// ReadUint32 consumes a big-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Len() < 4 {
		return 0, keyerr.At(keyerr.TruncatedInput, "wire.ReadUint32", r.off, "need 4 bytes, have %d", r.Len())
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// ReadString consumes a uint32 length prefix and that many bytes.
func (r *Reader) ReadString() ([]byte, error) {
	start := r.off
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Len()) {
		r.off = start
		return nil, keyerr.At(keyerr.TruncatedInput, "wire.ReadString", start, "declared length %d exceeds remaining %d bytes", n, r.Len())
	}
	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

// ReadText reads a string field and returns it as a Go string.
func (r *Reader) ReadText() (string, error) {
	b, err := r.ReadString()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadMpint reads a multiple-precision integer. The magnitude is taken as
// unsigned: a leading 0x00 sign byte is dropped and its absence does not make
// the value negative.
func (r *Reader) ReadMpint() (*big.Int, error) {
	b, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(b), nil
}

// ReadRest consumes everything left.
func (r *Reader) ReadRest() []byte {
	b := r.buf[r.off:]
	r.off = len(r.buf)
	return b
}

// ExpectEnd fails with MalformedEncoding if unread bytes remain.
func (r *Reader) ExpectEnd(op string) error {
	if r.Len() != 0 {
		return keyerr.At(keyerr.MalformedEncoding, op, r.off, "%d trailing bytes", r.Len())
	}
	return nil
}

// Writer accumulates wire-encoded fields. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len is the encoded length so far.
func (w *Writer) Len() int { return len(w.buf) }

// PutRaw appends b without a length prefix.
func (w *Writer) PutRaw(b []byte) { w.buf = append(w.buf, b...) }

// PutUint32 appends a big-endian uint32.
func (w *Writer) PutUint32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }

// PutString appends a length-prefixed byte string.
func (w *Writer) PutString(b []byte) {
	w.PutUint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// PutText appends a length-prefixed Go string.
func (w *Writer) PutText(s string) {
	w.PutUint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// PutMpint appends a non-negative integer as an mpint. Zero is the empty
// string; a value whose top bit is set gets a 0x00 prefix.
func (w *Writer) PutMpint(v *big.Int) {
	if v == nil || v.Sign() == 0 {
		w.PutUint32(0)
		return
	}
	b := v.Bytes()
	if b[0]&0x80 != 0 {
		w.PutUint32(uint32(len(b) + 1))
		w.buf = append(w.buf, 0)
		w.buf = append(w.buf, b...)
		return
	}
	w.PutString(b)
}

// MpintLen is the encoded size of v including its length prefix.
func MpintLen(v *big.Int) int {
	if v == nil || v.Sign() == 0 {
		return 4
	}
	n := (v.BitLen() + 7) / 8
	if v.BitLen()%8 == 0 {
		n++
	}
	return 4 + n
}

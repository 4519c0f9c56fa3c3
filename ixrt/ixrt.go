// Copyright (c) 2025 DASMAC <dev@dasmac.com>
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

// Package ixrt is the runtime that generated instruction code compiles
// against: scalar types for the wire format, account metadata, the
// instruction value, and the cross-program invocation call shape.
package ixrt

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// ErrInvalidInstructionTag is returned when a discriminant byte does
// not name any instruction of the set.
var ErrInvalidInstructionTag = errors.New("ixrt: invalid instruction tag")

// ErrInvalidInstructionData is returned when an instruction payload is
// too short for its declared layout.
var ErrInvalidInstructionData = errors.New("ixrt: invalid instruction data")

// Address is a 32-byte account address.
type Address [32]uint8

func AddressFromBase58(s string) (Address, error) {
	var addr Address
	decoded, err := base58.Decode(s)
	if err != nil {
		return addr, fmt.Errorf("ixrt: invalid address %q: %w", s, err)
	}
	if len(decoded) != len(addr) {
		return addr, fmt.Errorf(
			"ixrt: address %q decodes to %d bytes (want %d)",
			s, len(decoded), len(addr),
		)
	}
	copy(addr[:], decoded)
	return addr, nil
}

// MustAddressFromBase58 is AddressFromBase58 for addresses known at
// program start, such as generated program ids.
func MustAddressFromBase58(s string) Address {
	addr, err := AddressFromBase58(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// Uint128 is an unsigned 128-bit integer, stored and serialized as two
// little-endian 64-bit halves with Lo first.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// PutUint128 writes v into the first 16 bytes of b.
func PutUint128(b []uint8, v Uint128) {
	binary.LittleEndian.PutUint64(b[0:8], v.Lo)
	binary.LittleEndian.PutUint64(b[8:16], v.Hi)
}

// GetUint128 reads a Uint128 from the first 16 bytes of b.
func GetUint128(b []uint8) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

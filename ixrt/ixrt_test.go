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

package ixrt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DASMAC-com/dropset-v1/ixrt"
)

const systemProgram58 = "11111111111111111111111111111111"

func TestAddressFromBase58(t *testing.T) {
	t.Parallel()

	addr, err := ixrt.AddressFromBase58(systemProgram58)
	require.NoError(t, err)
	assert.Equal(t, ixrt.Address{}, addr)
	assert.Equal(t, systemProgram58, addr.String())
}

func TestAddressFromBase58Invalid(t *testing.T) {
	t.Parallel()

	_, err := ixrt.AddressFromBase58("0OIl")
	assert.Error(t, err)

	// Valid base58, wrong decoded length.
	_, err = ixrt.AddressFromBase58("abc")
	assert.Error(t, err)
}

func TestMustAddressFromBase58(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		ixrt.MustAddressFromBase58(systemProgram58)
	})
	assert.Panics(t, func() {
		ixrt.MustAddressFromBase58("not base58 at all!")
	})
}

func TestUint128RoundTrip(t *testing.T) {
	t.Parallel()

	v := ixrt.Uint128{Lo: 0x0102030405060708, Hi: 0x090A0B0C0D0E0F10}
	var buf [16]uint8
	ixrt.PutUint128(buf[:], v)
	assert.Equal(t, v, ixrt.GetUint128(buf[:]))
}

func TestUint128ByteOrder(t *testing.T) {
	t.Parallel()

	var buf [16]uint8
	ixrt.PutUint128(buf[:], ixrt.Uint128{Lo: 1, Hi: 2})

	// Little-endian, low word first.
	want := [16]uint8{1, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, buf)
}

func TestAccountMetaConstructors(t *testing.T) {
	t.Parallel()

	addr := ixrt.MustAddressFromBase58(systemProgram58)

	tests := []struct {
		name     string
		meta     ixrt.AccountMeta
		signer   bool
		writable bool
	}{
		{"writable signer", ixrt.WritableSignerMeta(addr), true, true},
		{"writable", ixrt.WritableMeta(addr), false, true},
		{"readonly signer", ixrt.ReadonlySignerMeta(addr), true, false},
		{"readonly", ixrt.ReadonlyMeta(addr), false, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, addr, test.meta.Address)
			assert.Equal(t, test.signer, test.meta.IsSigner)
			assert.Equal(t, test.writable, test.meta.IsWritable)
		})
	}
}

func TestAccountInfoKey(t *testing.T) {
	t.Parallel()

	addr := ixrt.MustAddressFromBase58(systemProgram58)
	info := ixrt.NewAccountInfo(addr)
	assert.Equal(t, addr, info.Key())
}

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

package ixrt

// AccountInfo is a reference to an account passed into the current
// program invocation.
type AccountInfo struct {
	key Address
}

func NewAccountInfo(key Address) *AccountInfo {
	return &AccountInfo{key: key}
}

func (a *AccountInfo) Key() Address {
	return a.key
}

// AccountMeta names an account taking part in an instruction, with its
// access flags.
type AccountMeta struct {
	Address    Address
	IsSigner   bool
	IsWritable bool
}

func WritableSignerMeta(address Address) AccountMeta {
	return AccountMeta{
		Address:    address,
		IsSigner:   true,
		IsWritable: true,
	}
}

func WritableMeta(address Address) AccountMeta {
	return AccountMeta{
		Address:    address,
		IsWritable: true,
	}
}

func ReadonlySignerMeta(address Address) AccountMeta {
	return AccountMeta{
		Address:  address,
		IsSigner: true,
	}
}

func ReadonlyMeta(address Address) AccountMeta {
	return AccountMeta{
		Address: address,
	}
}

// Instruction is one instruction addressed to a program.
type Instruction struct {
	ProgramID Address
	Accounts  []AccountMeta
	Data      []uint8
}

// SignerSeeds is one group of seeds deriving a program signer.
type SignerSeeds [][]uint8

// CPI is the cross-program invocation primitive. Implementations
// execute ix against the program named by ix.ProgramID; accounts holds
// the referenced account infos in meta order.
type CPI interface {
	InvokeSigned(
		ix Instruction,
		accounts []*AccountInfo,
		seeds []SignerSeeds,
	) error
}

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

package compiler

import (
	"fmt"

	"github.com/DASMAC-com/dropset-v1/ixgen/syntax"
)

type Error struct {
	code    uint32
	message string
	span    syntax.Span
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() syntax.Span {
	return err.span
}

func errMissingProgram(span syntax.Span) error {
	return &Error{
		code:    3000,
		message: "Missing 'program' declaration",
		span:    span,
	}
}

func errMissingProgramID(program string, span syntax.Span) error {
	return &Error{
		code:    3001,
		message: fmt.Sprintf("Program %q declares no 'id'", program),
		span:    span,
	}
}

func errInvalidProgramID(node *syntax.TextLit) error {
	return &Error{
		code:    3002,
		message: fmt.Sprintf("Program id %s is not valid base58", syntax.Unparse(node)),
		span:    node.Span(),
	}
}

func errProgramIDWrongLength(gotLen int, node *syntax.TextLit) error {
	return &Error{
		code: 3003,
		message: fmt.Sprintf(
			"Program id decodes to %d bytes (must be 32)", gotLen,
		),
		span: node.Span(),
	}
}

func errInstructionNameConflict(
	name string,
	prev, node *syntax.Instruction,
) error {
	return &Error{
		code: 3004,
		message: fmt.Sprintf(
			"Instruction name %q conflicts with an earlier declaration", name,
		),
		span: node.Name().Span(),
	}
}

func errTagOutOfRange(instruction string, lit *syntax.IntLit) error {
	return &Error{
		code: 3005,
		message: fmt.Sprintf(
			"Discriminant %s of instruction %q does not fit in u8",
			syntax.Unparse(lit), instruction,
		),
		span: lit.Span(),
	}
}

func errTagOverflow(instruction string, span syntax.Span) error {
	return &Error{
		code: 3006,
		message: fmt.Sprintf(
			"Implicit discriminant of instruction %q exceeds 255", instruction,
		),
		span: span,
	}
}

func errTagConflict(tag uint8, prev, name string, span syntax.Span) error {
	return &Error{
		code: 3007,
		message: fmt.Sprintf(
			"Discriminant %d of instruction %q conflicts with instruction %q",
			tag, name, prev,
		),
		span: span,
	}
}

func errAccountIndexOutOfRange(
	instruction, account string,
	lit *syntax.IntLit,
) error {
	return &Error{
		code: 3008,
		message: fmt.Sprintf(
			"Index %s of account %q in instruction %q does not fit in u8",
			syntax.Unparse(lit), account, instruction,
		),
		span: lit.Span(),
	}
}

func errAccountIndexConflict(
	instruction string,
	index uint8,
	prev, name string,
	span syntax.Span,
) error {
	return &Error{
		code: 3009,
		message: fmt.Sprintf(
			"Account index %d in instruction %q is declared by both %q and %q",
			index, instruction, prev, name,
		),
		span: span,
	}
}

func errAccountIndexGap(
	instruction string,
	missing uint8,
	span syntax.Span,
) error {
	return &Error{
		code: 3010,
		message: fmt.Sprintf(
			"Account indices in instruction %q have a gap: index %d is not declared",
			instruction, missing,
		),
		span: span,
	}
}

func errAccountNameConflict(
	instruction, account string,
	span syntax.Span,
) error {
	return &Error{
		code: 3011,
		message: fmt.Sprintf(
			"Account name %q in instruction %q conflicts with an earlier account",
			account, instruction,
		),
		span: span,
	}
}

func errUnknownAccountFlag(
	instruction, account, flag string,
	span syntax.Span,
) error {
	return &Error{
		code: 3012,
		message: fmt.Sprintf(
			"Unknown flag %q on account %q in instruction %q"+
				" (flags are 'signer' and 'writable')",
			flag, account, instruction,
		),
		span: span,
	}
}

func errNoSignerAccount(instruction string, span syntax.Span) error {
	return &Error{
		code: 3013,
		message: fmt.Sprintf(
			"Instruction %q declares accounts but no signer", instruction,
		),
		span: span,
	}
}

func errArgNameConflict(instruction, arg string, span syntax.Span) error {
	return &Error{
		code: 3014,
		message: fmt.Sprintf(
			"Argument name %q in instruction %q conflicts with an earlier argument",
			arg, instruction,
		),
		span: span,
	}
}

func errUnknownArgType(
	instruction, arg, typeName string,
	span syntax.Span,
) error {
	return &Error{
		code: 3015,
		message: fmt.Sprintf(
			"Unknown type %q of argument %q in instruction %q",
			typeName, arg, instruction,
		),
		span: span,
	}
}

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

type Warning struct {
	code    uint32
	message string
	span    syntax.Span
}

func (w *Warning) String() string {
	return fmt.Sprintf("W%d: %s", w.code, w.message)
}

func (w *Warning) Code() uint32 {
	return w.code
}

func (w *Warning) Message() string {
	return w.message
}

func (w *Warning) Span() syntax.Span {
	return w.span
}

func warnTagOnlyInstruction(instruction string, span syntax.Span) *Warning {
	return &Warning{
		code: 4000,
		message: fmt.Sprintf(
			"Instruction %q declares no accounts and no arguments", instruction,
		),
		span: span,
	}
}

func warnDataOnlyInstruction(instruction string, span syntax.Span) *Warning {
	return &Warning{
		code: 4001,
		message: fmt.Sprintf(
			"Instruction %q declares arguments but no accounts", instruction,
		),
		span: span,
	}
}

func warnAccountMissingDesc(
	instruction, account string,
	span syntax.Span,
) *Warning {
	return &Warning{
		code: 4002,
		message: fmt.Sprintf(
			"Account %q in instruction %q has no description",
			account, instruction,
		),
		span: span,
	}
}

func warnDuplicateAccountFlag(
	instruction, account, flag string,
	span syntax.Span,
) *Warning {
	return &Warning{
		code: 4003,
		message: fmt.Sprintf(
			"Duplicate flag %q on account %q in instruction %q",
			flag, account, instruction,
		),
		span: span,
	}
}

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

package syntax

import (
	"bytes"
	"iter"
	"math"
	"slices"
	"strconv"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s *Span) Start() uint32 {
	return s.start
}

func (s *Span) End() uint32 {
	return s.start + s.len
}

func (s *Span) Len() uint32 {
	return s.len
}

type Node interface {
	Span() Span

	ChildNodes() iter.Seq[Node]

	privChildren() []Node

	UnparseTo(buf *bytes.Buffer)
}

func Unparse(node Node) string {
	var buf bytes.Buffer
	node.UnparseTo(&buf)
	return buf.String()
}

func Walk(node Node, walkFn func(Node) bool) {
	if node == nil || !walkFn(node) {
		return
	}
	for _, child := range node.privChildren() {
		Walk(child, walkFn)
	}
	walkFn(nil)
}

func iterChildren(childNodes []Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, child := range childNodes {
			if !yield(child) {
				return
			}
		}
	}
}

type leafNode struct{}

func (*leafNode) ChildNodes() iter.Seq[Node] {
	return func(_yield func(Node) bool) {}
}

func (*leafNode) privChildren() []Node {
	return nil
}

type ParseError struct {
	leafNode
	span Span
	err  error
}

var _ Node = (*ParseError)(nil)

func (e *ParseError) Span() Span {
	return e.span
}

func (e *ParseError) UnparseTo(buf *bytes.Buffer) {
	panic("ParseError.UnparseTo: unimplemented")
}

func (e *ParseError) Get() error {
	return e.err
}

type Space struct {
	leafNode
	raw   string
	start uint32
}

var _ Node = (*Space)(nil)

func (n *Space) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *Space) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

type Newline struct {
	leafNode
	start uint32
	crlf  bool
}

var _ Node = (*Newline)(nil)

func (n *Newline) Span() Span {
	var len uint32
	if n.crlf {
		len = 2
	} else {
		len = 1
	}
	return Span{
		start: n.start,
		len:   len,
	}
}

func (n *Newline) UnparseTo(buf *bytes.Buffer) {
	if n.crlf {
		buf.WriteString("\r\n")
	} else {
		buf.WriteByte('\n')
	}
}

type Comment struct {
	leafNode
	raw   string
	start uint32
}

var _ Node = (*Comment)(nil)

func (n *Comment) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *Comment) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

func (n *Comment) Text() string {
	return n.raw
}

type IntLit struct {
	leafNode
	raw   string
	value uint64
	start uint32
}

var _ Node = (*IntLit)(nil)

func (n *IntLit) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *IntLit) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

func newIntLit(token string, kind TokenKind, start uint32) (*IntLit, error) {
	base := 10
	valueStr := token
	if valueStr[0] == '-' {
		valueStr = valueStr[1:]
	}
	switch kind {
	case T_BIN_INT_LIT:
		base = 2
		valueStr = valueStr[2:]
	case T_OCT_INT_LIT:
		base = 8
		valueStr = valueStr[2:]
	case T_DEC_INT_LIT:
		base = 10
		valueStr = valueStr[2:]
	case T_HEX_INT_LIT:
		base = 16
		valueStr = valueStr[2:]
	}

	value, err := strconv.ParseUint(valueStr, base, 64)
	if err != nil {
		return nil, errIntLitTooPositive(token, start)
	}
	if token[0] == '-' {
		if value > (uint64(math.MaxInt64) + 1) {
			return nil, errIntLitTooNegative(token, start)
		}
		value = uint64(-int64(value))
	}

	return &IntLit{
		raw:   token,
		value: value,
		start: start,
	}, nil
}

func (n *IntLit) IsNegative() bool {
	return n.raw[0] == '-'
}

func (n *IntLit) GetUint8() (uint8, bool) {
	if n.raw[0] != '-' && n.value <= math.MaxUint8 {
		return uint8(n.value), true
	}
	return 0, false
}

func (n *IntLit) GetUint64() (uint64, bool) {
	if n.raw[0] != '-' {
		return n.value, true
	}
	return 0, false
}

type TextLit struct {
	leafNode
	raw       string
	value     string
	start     uint32
	validText bool
}

var _ Node = (*TextLit)(nil)

func (n *TextLit) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *TextLit) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

func newTextLit(token string, start uint32, flags uint8) (*TextLit, error) {
	value := token[1 : len(token)-1]
	if flags&tokenFlagTextHasNoEscapes != 0 {
		return &TextLit{
			raw:       token,
			value:     value,
			start:     start,
			validText: true,
		}, nil
	}

	invalid := func() (*TextLit, error) {
		return nil, errTextLitInvalid(start, token)
	}

	var buf bytes.Buffer
	escaped := false
	validText := true
	for len(value) > 0 {
		c := value[0]
		if !escaped {
			if c == 0x5C {
				escaped = true
			} else {
				buf.WriteByte(c)
			}
			value = value[1:]
			continue
		}
		escaped = false

		switch c {
		case 0x22, 0x5C:
			buf.WriteByte(c)
			value = value[1:]
		case 0x6E:
			buf.WriteByte(0x0A)
			value = value[1:]
		case 0x74:
			buf.WriteByte(0x09)
			value = value[1:]
		case 0x78:
			if len(value) < 3 {
				return invalid()
			}
			b, err := strconv.ParseUint(value[1:3], 16, 8)
			if err != nil {
				return invalid()
			}
			if b == 0 || b > 0x7F {
				validText = false
			}
			buf.WriteByte(uint8(b))
			value = value[3:]
		case 0x75:
			value = value[1:]
			if len(value) == 0 || value[0] != 0x7B {
				return invalid()
			}
			value = value[1:]

			var hex string
			hexEnd := false
			for ii, hc := range value {
				if hc == 0x7D {
					hex = value[:ii]
					value = value[ii:]
					hexEnd = true
					break
				}
			}
			if !hexEnd || len(hex) == 0 || len(hex) > 6 {
				return invalid()
			}

			if len(value) == 0 || value[0] != 0x7D {
				return invalid()
			}
			value = value[1:]

			scalar, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return invalid()
			}
			if scalar == 0 {
				validText = false
			}
			if scalar > 0x10FFFF {
				return invalid()
			}

			buf.WriteRune(rune(scalar))
		default:
			return invalid()
		}
	}
	if escaped {
		return invalid()
	}
	return &TextLit{
		raw:       token,
		value:     buf.String(),
		start:     start,
		validText: validText,
	}, nil
}

func (n *TextLit) IsText() bool {
	return n.validText
}

func (n *TextLit) GetText() (string, bool) {
	if !n.validText {
		return "", false
	}
	return n.value, true
}

type Sigil struct {
	leafNode
	raw   byte
	start uint32
}

var _ Node = (*Sigil)(nil)

func (n *Sigil) Span() Span {
	return Span{
		start: n.start,
		len:   1,
	}
}

func (n *Sigil) UnparseTo(buf *bytes.Buffer) {
	buf.WriteByte(n.raw)
}

type Ident struct {
	leafNode
	raw   string
	start uint32
}

var _ Node = (*Ident)(nil)

func (n *Ident) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *Ident) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

func (n *Ident) Get() string {
	return n.raw
}

type Keyword struct {
	leafNode
	raw   string
	start uint32
}

var _ Node = (*Keyword)(nil)

func (n *Keyword) Span() Span {
	return Span{
		start: n.start,
		len:   uint32(len(n.raw)),
	}
}

func (n *Keyword) UnparseTo(buf *bytes.Buffer) {
	buf.WriteString(n.raw)
}

// Document is the root of a parsed instruction definition file. It
// contains at most one Program declaration and any number of
// Instruction declarations, in source order.
type Document struct {
	span       Span
	childNodes []Node

	program      *Program
	instructions []*Instruction
}

var _ Node = (*Document)(nil)

func (n *Document) Span() Span {
	return n.span
}

func (n *Document) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Document) privChildren() []Node {
	return n.childNodes
}

func (n *Document) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Document) Program() *Program {
	return n.program
}

func (n *Document) Instructions() iter.Seq[*Instruction] {
	return slices.Values(n.instructions)
}

// Program is a `program <name> { ... }` declaration. It binds the
// program name, the on-chain program address, and an optional custom
// error identifier.
type Program struct {
	span       Span
	childNodes []Node

	name      *Ident
	id        *TextLit
	errorName *Ident
}

var _ Node = (*Program)(nil)

func (n *Program) Span() Span {
	return n.span
}

func (n *Program) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Program) privChildren() []Node {
	return n.childNodes
}

func (n *Program) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Program) Name() *Ident {
	return n.name
}

// ID is the program address literal, or nil if the `id` field was
// omitted.
func (n *Program) ID() *TextLit {
	return n.id
}

// ErrorName is the custom error identifier, or nil if the `error`
// field was omitted.
func (n *Program) ErrorName() *Ident {
	return n.errorName
}

// Instruction is an `instruction <name> [= <tag>] { ... }` declaration.
type Instruction struct {
	span       Span
	childNodes []Node

	name     *Ident
	tag      *IntLit
	doc      *Doc
	accounts []*Account
	args     []*Arg
}

var _ Node = (*Instruction)(nil)

func (n *Instruction) Span() Span {
	return n.span
}

func (n *Instruction) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Instruction) privChildren() []Node {
	return n.childNodes
}

func (n *Instruction) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Instruction) Name() *Ident {
	return n.name
}

// Tag is the explicit discriminant literal, or nil if the instruction
// takes an implicit discriminant.
func (n *Instruction) Tag() *IntLit {
	return n.tag
}

func (n *Instruction) Doc() *Doc {
	return n.doc
}

func (n *Instruction) Accounts() []*Account {
	return n.accounts
}

func (n *Instruction) Args() []*Arg {
	return n.args
}

// Doc is a `doc "..."` item inside an instruction body.
type Doc struct {
	span       Span
	childNodes []Node

	text *TextLit
}

var _ Node = (*Doc)(nil)

func (n *Doc) Span() Span {
	return n.span
}

func (n *Doc) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Doc) privChildren() []Node {
	return n.childNodes
}

func (n *Doc) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Doc) Text() *TextLit {
	return n.text
}

// Account is an `account <index> <name> [flags] "desc"` item.
type Account struct {
	span       Span
	childNodes []Node

	index *IntLit
	name  *Ident
	flags []*Ident
	desc  *TextLit
}

var _ Node = (*Account)(nil)

func (n *Account) Span() Span {
	return n.span
}

func (n *Account) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Account) privChildren() []Node {
	return n.childNodes
}

func (n *Account) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Account) Index() *IntLit {
	return n.index
}

func (n *Account) Name() *Ident {
	return n.name
}

func (n *Account) Flags() []*Ident {
	return n.flags
}

// Desc is the account description literal, or nil if omitted.
func (n *Account) Desc() *TextLit {
	return n.desc
}

// Arg is an `arg <name>: <type> "desc"` item.
type Arg struct {
	span       Span
	childNodes []Node

	name     *Ident
	typeName *Ident
	desc     *TextLit
}

var _ Node = (*Arg)(nil)

func (n *Arg) Span() Span {
	return n.span
}

func (n *Arg) ChildNodes() iter.Seq[Node] {
	return iterChildren(n.childNodes)
}

func (n *Arg) privChildren() []Node {
	return n.childNodes
}

func (n *Arg) UnparseTo(buf *bytes.Buffer) {
	for _, childNode := range n.childNodes {
		childNode.UnparseTo(buf)
	}
}

func (n *Arg) Name() *Ident {
	return n.name
}

func (n *Arg) TypeName() *Ident {
	return n.typeName
}

// Desc is the argument description literal, or nil if omitted.
func (n *Arg) Desc() *TextLit {
	return n.desc
}

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

// Package syntax parses instruction definition files into a lossless
// syntax tree. Every byte of the source is retained in the tree, so
// that Unparse(Parse(src)) == src for any valid input.
package syntax

import (
	"bytes"
)

type ParseOption interface {
	apply(*ParseOptions)
}

func Parse(src []uint8, opts ...ParseOption) (*Document, error) {
	return NewParseOptions(opts...).ParseDocument(src)
}

type ParseOptions struct {
	saveSpaces   bool
	saveNewlines bool
	saveComments bool
}

func NewParseOptions(opts ...ParseOption) *ParseOptions {
	parseOpts := &ParseOptions{
		saveSpaces:   true,
		saveNewlines: true,
		saveComments: true,
	}
	for _, opt := range opts {
		opt.apply(parseOpts)
	}
	return parseOpts
}

type parseOptionFunc func(*ParseOptions)

func (f parseOptionFunc) apply(opts *ParseOptions) {
	f(opts)
}

// SkipTrivia discards space, newline, and comment nodes while parsing.
// The resulting tree no longer unparses to the original source.
func SkipTrivia() ParseOption {
	return parseOptionFunc(func(opts *ParseOptions) {
		opts.saveSpaces = false
		opts.saveNewlines = false
		opts.saveComments = false
	})
}

func (opts *ParseOptions) ParseDocument(src []uint8) (*Document, error) {
	ctx, err := newParseCtx[Document](opts, src)
	if err != nil {
		return nil, err
	}
	return parseDocument(ctx)
}

func (opts *ParseOptions) ParseProgram(src []uint8) (*Program, error) {
	ctx, err := newParseCtx[Program](opts, src)
	if err != nil {
		return nil, err
	}
	return parseProgram(ctx)
}

func (opts *ParseOptions) ParseInstruction(src []uint8) (*Instruction, error) {
	ctx, err := newParseCtx[Instruction](opts, src)
	if err != nil {
		return nil, err
	}
	return parseInstruction(ctx)
}

type parseCtx[T any] struct {
	src        []uint8
	opts       *ParseOptions
	tokens     *Tokens
	childNodes []Node
	haveToken  bool
	token      Token
	err        error
	consumed   uint32
	offset     uint32
}

func newParseCtx[T any](opts *ParseOptions, src []uint8) (*parseCtx[T], error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	return &parseCtx[T]{
		src:    src,
		opts:   opts,
		tokens: tokens,
	}, nil
}

func (ctx *parseCtx[T]) ensureToken() error {
	if ctx.err != nil {
		return ctx.err
	}
	if ctx.haveToken {
		return nil
	}
	if err := ctx.tokens.Next(&ctx.token); err != nil {
		ctx.err = err
		return ctx.err
	}
	ctx.haveToken = true
	return nil
}

func (ctx *parseCtx[T]) readToken() []uint8 {
	return ctx.src[:ctx.token.Len]
}

func (ctx *parseCtx[T]) consumeToken(child Node) {
	ctx.src = ctx.src[ctx.token.Len:]
	ctx.consumed += uint32(ctx.token.Len)
	ctx.offset += uint32(ctx.token.Len)
	ctx.haveToken = false
	if child != nil {
		ctx.childNodes = append(ctx.childNodes, child)
	}
}

func (ctx *parseCtx[T]) tokenSpan() Span {
	return Span{
		start: ctx.offset,
		len:   uint32(ctx.token.Len),
	}
}

func (ctx *parseCtx[T]) loop(yield func(struct{}) bool) {
	if ctx.err != nil {
		return
	}
	for {
		consumed := ctx.consumed
		if !yield(struct{}{}) {
			return
		}
		if ctx.err != nil {
			return
		}
		if consumed == ctx.consumed {
			return
		}
	}
}

func (ctx *parseCtx[T]) space() {
	if err := ctx.ensureToken(); err != nil {
		return
	}
	if ctx.token.Kind != T_SPACE {
		return
	}
	ctx.consumeSpace()
}

func (ctx *parseCtx[T]) consumeSpace() {
	if !ctx.opts.saveSpaces {
		ctx.consumeToken(nil)
		return
	}

	tokenBytes := ctx.readToken()
	var token string
	if bytes.Equal(tokenBytes, []uint8{' '}) {
		token = " "
	} else {
		token = string(tokenBytes)
	}
	ctx.consumeToken(&Space{
		raw:   token,
		start: ctx.offset,
	})
}

func (ctx *parseCtx[T]) comments() {
	for _ = range ctx.loop {
		if err := ctx.ensureToken(); err != nil {
			return
		}
		switch ctx.token.Kind {
		case T_SPACE:
			ctx.consumeSpace()
		case T_NEWLINE:
			if !ctx.opts.saveNewlines {
				ctx.consumeToken(nil)
				break
			}
			ctx.consumeToken(&Newline{
				crlf:  ctx.token.Len == 2,
				start: ctx.offset,
			})
		case T_COMMENT:
			if !ctx.opts.saveComments {
				ctx.consumeToken(nil)
				break
			}
			ctx.consumeToken(&Comment{
				raw:   string(ctx.readToken()),
				start: ctx.offset,
			})
		default:
			return
		}
	}
}

func (ctx *parseCtx[T]) sigil(kind TokenKind) {
	if err := ctx.ensureToken(); err != nil {
		return
	}
	if ctx.token.Kind != kind {
		ctx.err = errExpectedSigil(
			kind,
			ctx.token.Kind,
			string(ctx.readToken()),
			ctx.tokenSpan(),
		)
		return
	}
	ctx.consumeToken(&Sigil{
		raw:   ctx.src[0],
		start: ctx.offset,
	})
}

func (ctx *parseCtx[T]) trySigil(kind TokenKind) bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	if ctx.token.Kind != kind {
		return false
	}
	ctx.consumeToken(&Sigil{
		raw:   ctx.src[0],
		start: ctx.offset,
	})
	return true
}

func (ctx *parseCtx[T]) tryKeyword(keyword string) bool {
	if err := ctx.ensureToken(); err != nil {
		return false
	}
	if ctx.token.Kind != T_IDENT {
		return false
	}
	if string(ctx.readToken()) != keyword {
		return false
	}
	ctx.consumeToken(&Keyword{
		raw:   keyword,
		start: ctx.offset,
	})
	return true
}

func (ctx *parseCtx[T]) ident() *Ident {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())
	if ctx.token.Kind != T_IDENT {
		ctx.err = errExpectedIdent(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}
	ident := &Ident{
		raw:   token,
		start: ctx.offset,
	}
	ctx.consumeToken(ident)
	return ident
}

func (ctx *parseCtx[T]) int() *IntLit {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())

	switch ctx.token.Kind {
	case T_INT_LIT, T_BIN_INT_LIT, T_OCT_INT_LIT, T_DEC_INT_LIT, T_HEX_INT_LIT:
	default:
		ctx.err = errExpectedIntLit(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}

	intNode, err := newIntLit(token, ctx.token.Kind, ctx.offset)
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(intNode)
	return intNode
}

func (ctx *parseCtx[T]) text() *TextLit {
	if err := ctx.ensureToken(); err != nil {
		return nil
	}
	token := string(ctx.readToken())

	if ctx.token.Kind != T_TEXT_LIT {
		ctx.err = errExpectedTextLit(ctx.token.Kind, token, ctx.tokenSpan())
		return nil
	}
	textNode, err := newTextLit(token, ctx.offset, ctx.token.flags)
	if err != nil {
		ctx.err = err
		return nil
	}
	ctx.consumeToken(textNode)
	return textNode
}

func (ctx *parseCtx[T]) finish(
	build func(span Span, childNodes []Node) *T,
) (*T, error) {
	if ctx.err != nil {
		return nil, ctx.err
	}
	span := Span{
		start: ctx.offset - ctx.consumed,
		len:   ctx.consumed,
	}
	return build(span, ctx.childNodes), nil
}

func parseChild[P any, C any, PtrC interface {
	*C
	Node
}](
	ctx *parseCtx[P],
	parseChildFn func(*parseCtx[C]) (PtrC, error),
) (*C, bool) {
	if ctx.err != nil {
		return nil, false
	}
	childCtx := &parseCtx[C]{
		src:       ctx.src,
		opts:      ctx.opts,
		tokens:    ctx.tokens,
		haveToken: ctx.haveToken,
		token:     ctx.token,
		offset:    ctx.offset,
	}
	child, err := parseChildFn(childCtx)
	if err != nil {
		ctx.err = err
		return nil, false
	}

	ctx.haveToken = childCtx.haveToken
	ctx.token = childCtx.token

	if childCtx.consumed == 0 {
		return nil, false
	}
	ctx.src = ctx.src[childCtx.consumed:]
	ctx.consumed += childCtx.consumed
	ctx.offset = childCtx.offset
	ctx.childNodes = append(ctx.childNodes, child)
	return child, true
}

func parseDocument(ctx *parseCtx[Document]) (*Document, error) {
	var program *Program
	var instructions []*Instruction

	for _ = range ctx.loop {
		ctx.comments()

		if ctx.token.Kind == T_EOF {
			break
		}

		if decl, ok := parseChild(ctx, parseProgram); ok {
			if program != nil {
				return nil, errDuplicateProgram(decl.Span())
			}
			program = decl
			continue
		}
		if ctx.err != nil {
			return nil, ctx.err
		}

		if decl, ok := parseChild(ctx, parseInstruction); ok {
			instructions = append(instructions, decl)
			continue
		}
		if ctx.err != nil {
			return nil, ctx.err
		}

		token := string(ctx.readToken())
		span := ctx.tokenSpan()
		if ctx.token.Kind == T_IDENT {
			return nil, errUnknownDeclaration(token, span)
		}
		return nil, errExpectedDeclaration(ctx.token.Kind, token, span)
	}

	return ctx.finish(func(span Span, childNodes []Node) *Document {
		return &Document{
			span:         span,
			childNodes:   childNodes,
			program:      program,
			instructions: instructions,
		}
	})
}

func parseProgram(ctx *parseCtx[Program]) (*Program, error) {
	if !ctx.tryKeyword("program") {
		return nil, nil
	}
	ctx.space()
	name := ctx.ident()
	ctx.space()

	var id *TextLit
	var errorName *Ident
	ctx.sigil(T_OPEN_CURL)
	ctx.comments()
	for _ = range ctx.loop {
		if ctx.trySigil(T_CLOSE_CURL) {
			break
		}
		switch {
		case ctx.tryKeyword("id"):
			ctx.space()
			ctx.sigil(T_EQ)
			ctx.space()
			value := ctx.text()
			if ctx.err != nil {
				return nil, ctx.err
			}
			if id != nil {
				return nil, errDuplicateProgramField("id", value.Span())
			}
			id = value
		case ctx.tryKeyword("error"):
			ctx.space()
			ctx.sigil(T_EQ)
			ctx.space()
			value := ctx.ident()
			if ctx.err != nil {
				return nil, ctx.err
			}
			if errorName != nil {
				return nil, errDuplicateProgramField("error", value.Span())
			}
			errorName = value
		default:
			if ctx.err == nil {
				return nil, errExpectedProgramField(
					ctx.token.Kind,
					string(ctx.readToken()),
					ctx.tokenSpan(),
				)
			}
		}
		ctx.comments()
	}

	return ctx.finish(func(span Span, childNodes []Node) *Program {
		return &Program{
			span:       span,
			childNodes: childNodes,
			name:       name,
			id:         id,
			errorName:  errorName,
		}
	})
}

func parseInstruction(ctx *parseCtx[Instruction]) (*Instruction, error) {
	if !ctx.tryKeyword("instruction") {
		return nil, nil
	}
	ctx.space()
	name := ctx.ident()
	ctx.space()

	var tag *IntLit
	if ctx.trySigil(T_EQ) {
		ctx.space()
		tag = ctx.int()
		ctx.space()
	}

	var doc *Doc
	var accounts []*Account
	var args []*Arg
	ctx.sigil(T_OPEN_CURL)
	ctx.comments()
	for _ = range ctx.loop {
		if ctx.trySigil(T_CLOSE_CURL) {
			break
		}

		if item, ok := parseChild(ctx, parseDoc); ok {
			if doc != nil {
				return nil, errDuplicateDoc(item.Span())
			}
			doc = item
			ctx.comments()
			continue
		}
		if ctx.err != nil {
			return nil, ctx.err
		}

		if item, ok := parseChild(ctx, parseAccount); ok {
			accounts = append(accounts, item)
			ctx.comments()
			continue
		}
		if ctx.err != nil {
			return nil, ctx.err
		}

		if item, ok := parseChild(ctx, parseArg); ok {
			args = append(args, item)
			ctx.comments()
			continue
		}
		if ctx.err != nil {
			return nil, ctx.err
		}

		token := string(ctx.readToken())
		span := ctx.tokenSpan()
		if ctx.token.Kind == T_IDENT {
			return nil, errUnknownInstructionItem(token, span)
		}
		return nil, errExpectedInstructionItem(ctx.token.Kind, token, span)
	}

	return ctx.finish(func(span Span, childNodes []Node) *Instruction {
		return &Instruction{
			span:       span,
			childNodes: childNodes,
			name:       name,
			tag:        tag,
			doc:        doc,
			accounts:   accounts,
			args:       args,
		}
	})
}

func parseDoc(ctx *parseCtx[Doc]) (*Doc, error) {
	if !ctx.tryKeyword("doc") {
		return nil, nil
	}
	ctx.space()
	text := ctx.text()

	return ctx.finish(func(span Span, childNodes []Node) *Doc {
		return &Doc{
			span:       span,
			childNodes: childNodes,
			text:       text,
		}
	})
}

func parseAccount(ctx *parseCtx[Account]) (*Account, error) {
	if !ctx.tryKeyword("account") {
		return nil, nil
	}
	ctx.space()
	index := ctx.int()
	ctx.space()
	name := ctx.ident()
	ctx.space()

	var flags []*Ident
	if ctx.trySigil(T_OPEN_SQUARE) {
		ctx.space()
		for _ = range ctx.loop {
			if ctx.trySigil(T_CLOSE_SQUARE) {
				break
			}
			flags = append(flags, ctx.ident())
			ctx.space()
			if ctx.trySigil(T_COMMA) {
				ctx.space()
			}
		}
		ctx.space()
	}

	var desc *TextLit
	if err := ctx.ensureToken(); err != nil {
		return nil, err
	}
	if ctx.token.Kind == T_TEXT_LIT {
		desc = ctx.text()
	}

	return ctx.finish(func(span Span, childNodes []Node) *Account {
		return &Account{
			span:       span,
			childNodes: childNodes,
			index:      index,
			name:       name,
			flags:      flags,
			desc:       desc,
		}
	})
}

func parseArg(ctx *parseCtx[Arg]) (*Arg, error) {
	if !ctx.tryKeyword("arg") {
		return nil, nil
	}
	ctx.space()
	name := ctx.ident()
	ctx.space()
	ctx.sigil(T_COLON)
	ctx.space()
	typeName := ctx.ident()
	ctx.space()

	var desc *TextLit
	if err := ctx.ensureToken(); err != nil {
		return nil, err
	}
	if ctx.token.Kind == T_TEXT_LIT {
		desc = ctx.text()
	}

	return ctx.finish(func(span Span, childNodes []Node) *Arg {
		return &Arg{
			span:       span,
			childNodes: childNodes,
			name:       name,
			typeName:   typeName,
			desc:       desc,
		}
	})
}

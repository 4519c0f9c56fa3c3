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

package syntax_test

import (
	"fmt"
	"testing"

	"github.com/DASMAC-com/dropset-v1/internal/testutil"
	"github.com/DASMAC-com/dropset-v1/ixgen/syntax"
)

type strToken struct {
	kind    string
	content string
}

func lex(t *testing.T, src string) []strToken {
	t.Helper()
	tokens, err := syntax.NewTokens([]byte(src))
	testutil.AssertNoError(t, err)

	var got []strToken
	for {
		var token syntax.Token
		testutil.AssertNoError(t, tokens.Next(&token))
		if token.Kind == syntax.T_EOF {
			break
		}
		got = append(got, strToken{
			kind:    token.Kind.String(),
			content: src[:token.Len],
		})
		src = src[token.Len:]
	}
	return got
}

func TestTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want []strToken
	}{{
		src: "program dropset {\n}\n",
		want: []strToken{
			{"IDENT", "program"},
			{"SPACE", " "},
			{"IDENT", "dropset"},
			{"SPACE", " "},
			{"OPEN_CURL", "{"},
			{"NEWLINE", "\n"},
			{"CLOSE_CURL", "}"},
			{"NEWLINE", "\n"},
		},
	}, {
		src: "# a comment\n",
		want: []strToken{
			{"COMMENT", "# a comment"},
			{"NEWLINE", "\n"},
		},
	}, {
		src: ":,=[]",
		want: []strToken{
			{"COLON", ":"},
			{"COMMA", ","},
			{"EQ", "="},
			{"OPEN_SQUARE", "["},
			{"CLOSE_SQUARE", "]"},
		},
	}, {
		src:  "0",
		want: []strToken{{"INT_LIT", "0"}},
	}, {
		src:  "42",
		want: []strToken{{"INT_LIT", "42"}},
	}, {
		src:  "1_000",
		want: []strToken{{"INT_LIT", "1_000"}},
	}, {
		src:  "-7",
		want: []strToken{{"INT_LIT", "-7"}},
	}, {
		src:  "0x2A",
		want: []strToken{{"HEX_INT_LIT", "0x2A"}},
	}, {
		src:  "0b1010",
		want: []strToken{{"BIN_INT_LIT", "0b1010"}},
	}, {
		src:  "0o755",
		want: []strToken{{"OCT_INT_LIT", "0o755"}},
	}, {
		src:  "0d42",
		want: []strToken{{"DEC_INT_LIT", "0d42"}},
	}, {
		src:  `""`,
		want: []strToken{{"TEXT_LIT", `""`}},
	}, {
		src:  `"hello"`,
		want: []strToken{{"TEXT_LIT", `"hello"`}},
	}, {
		src:  `"a\"b"`,
		want: []strToken{{"TEXT_LIT", `"a\"b"`}},
	}, {
		src: "a\r\nb",
		want: []strToken{
			{"IDENT", "a"},
			{"NEWLINE", "\r\n"},
			{"IDENT", "b"},
		},
	}, {
		src: "a b",
		want: []strToken{
			{"IDENT", "a"},
			{"SPACE", " "},
			{"IDENT", "b"},
		},
	}, {
		src:  "base_lots_2",
		want: []strToken{{"IDENT", "base_lots_2"}},
	}}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.src), func(t *testing.T) {
			t.Parallel()
			testutil.ExpectSliceEq(t, test.want, lex(t, test.src))
		})
	}
}

func lexErr(t *testing.T, src []byte) *syntax.Error {
	t.Helper()
	tokens, err := syntax.NewTokens(src)
	if err != nil {
		return asSyntaxErr(t, err)
	}
	for {
		var token syntax.Token
		if err := tokens.Next(&token); err != nil {
			return asSyntaxErr(t, err)
		}
		if token.Kind == syntax.T_EOF {
			t.Fatal("Expected a lex error, got: EOF")
		}
	}
}

func asSyntaxErr(t *testing.T, err error) *syntax.Error {
	t.Helper()
	syntaxErr, ok := err.(*syntax.Error)
	if !ok {
		t.Fatalf("Expected *syntax.Error, got: %T", err)
	}
	return syntaxErr
}

func TestTokenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src      []byte
		wantCode uint32
	}{
		{[]byte{0xFF}, 1001},
		{[]byte("$"), 1002},
		{[]byte{0x01}, 1003},
		{[]byte("-"), 1005},
		{[]byte("-0"), 1005},
		{[]byte("09"), 1005},
		{[]byte("12ab"), 1005},
		{[]byte("0_"), 1005},
		{[]byte("0xZZ"), 1005},
		{[]byte("0b2"), 1005},
		{[]byte("0o8"), 1005},
		{[]byte(`"unterminated`), 1006},
		{[]byte("\"a\nb\""), 1007},
		{[]byte("a__b"), 1008},
		{[]byte("a_"), 1008},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%q", test.src), func(t *testing.T) {
			t.Parallel()
			err := lexErr(t, test.src)
			testutil.ExpectEq(t, test.wantCode, err.Code())
		})
	}
}

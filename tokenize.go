package main

import (
	"fmt"
	"os"
	"strconv"
)

// Token
type TokenKind int

const (
	TK_PUNCT TokenKind = iota // Punctuators
	TK_NUM                    // Numeric literals
	TK_EOF                    // End-of-file markers
)

func (k TokenKind) String() string {
	switch k {
	case TK_PUNCT:
		return "punct"
	case TK_NUM:
		return "num"
	case TK_EOF:
		return "eof"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Input file
type File struct {
	name     string // Empty if the source came from the command line
	contents string
}

// Token type
type Token struct {
	kind   TokenKind // Token kind
	next   *Token    // Next token
	val    int64     // If kind is TK_NUM, its value
	loc    int       // Token location
	len    int       // Token length
	lexeme string    // Token lexeme value in string
}

// Create a new token.
func NewToken(kind TokenKind, pos int, len int, lexeme string) *Token {
	return &Token{
		kind:   kind,
		loc:    pos,
		len:    len,
		lexeme: lexeme,
	}
}

func (tok *Token) String() string {
	switch tok.kind {
	case TK_NUM:
		return fmt.Sprintf("num(%d)@%d", tok.val, tok.loc)
	case TK_PUNCT:
		return fmt.Sprintf("punct(%q)@%d", tok.lexeme, tok.loc)
	}
	return fmt.Sprintf("eof@%d", tok.loc)
}

// Reports whether the token is the punctuator `op`.
func (tok *Token) equal(op string) bool {
	return tok.kind == TK_PUNCT && len(op) == tok.len && tok.lexeme == op
}

// Blank characters as C isspace classifies them.
func isSpace(c byte) bool {
	return c == ' ' || ('\t' <= c && c <= '\r')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isPunct(c byte) bool {
	return c == '+' || c == '-'
}

// Tokenize the contents of a given file and returns new tokens.
func tokenize(file *File) (*Token, error) {
	input := file.contents
	head := Token{}
	cur := &head
	p := 0

	for p < len(input) {
		// Skip whitespace characters.
		if isSpace(input[p]) {
			p++
			continue
		}

		// Numeric literal
		if isDigit(input[p]) {
			n, np, err := parseNumber(input, p)
			if err != nil {
				return nil, err
			}
			cur.next = NewToken(TK_NUM, p, np-p, input[p:np])
			cur = cur.next
			cur.val = n
			p = np
			continue
		}

		// Punctuator
		if isPunct(input[p]) {
			cur.next = NewToken(TK_PUNCT, p, 1, input[p:p+1])
			cur = cur.next
			p++
			continue
		}

		return nil, errorAt(ErrLex, p, "cannot tokenize")
	}

	cur.next = NewToken(TK_EOF, p, 0, "")
	return head.next, nil
}

// Returns the contents of a given file.
func readFile(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", name, err)
	}
	return &File{name: name, contents: string(data)}, nil
}

// Literals are limited to the 32-bit range so every target can encode them
// as a single immediate operand.
func parseNumber(s string, pos int) (int64, int, error) {
	start := pos
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	num, err := strconv.ParseInt(s[start:pos], 10, 32)
	if err != nil {
		return 0, pos, errorAt(ErrLex, start, "number out of range: %s", s[start:pos])
	}
	return num, pos, nil
}

package main

import (
	"bytes"
	"io"
)

// This file contains a single pass compiler for
//
//	program = num ("+" num | "-" num)* EOF
//
// There is no AST. Each grammar element is emitted as soon as it is
// recognized, so code appears in the same order as the terms of the input.

// Points at the token the parser is currently looking at.
type Cursor struct {
	tok *Token
}

// Consumes the current token if it matches `op`.
func (c *Cursor) consume(op string) bool {
	if !c.tok.equal(op) {
		return false
	}
	c.tok = c.tok.next
	return true
}

// Ensure that the current token is `op`.
func (c *Cursor) expect(op string) error {
	if !c.tok.equal(op) {
		return errorTok(c.tok, "expected '%s'", op)
	}
	c.tok = c.tok.next
	return nil
}

// Ensure that the current token is TK_NUM.
func (c *Cursor) expectNumber() (int64, error) {
	if c.tok.kind != TK_NUM {
		return 0, errorTok(c.tok, "expected a number")
	}
	val := c.tok.val
	c.tok = c.tok.next
	return val, nil
}

func (c *Cursor) atEOF() bool {
	return c.tok.kind == TK_EOF
}

// Compile the contents of file for target and write the listing to w.
// Nothing is written if the input has an error.
func compile(w io.Writer, file *File, target Arch) (*Program, error) {
	tok, err := tokenize(file)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gen := newCodegen(&buf, target)
	if err := program(&Cursor{tok: tok}, gen); err != nil {
		return nil, err
	}

	if _, err := buf.WriteTo(w); err != nil {
		return nil, err
	}
	return gen.prog, nil
}

func program(c *Cursor, gen *Codegen) error {
	gen.prologue()

	// The first token must be a number
	val, err := c.expectNumber()
	if err != nil {
		return err
	}
	gen.emit(OP_LOAD, val)

	// ... followed by either `+ <number>` or `- <number>`.
	for !c.atEOF() {
		if c.consume("+") {
			val, err := c.expectNumber()
			if err != nil {
				return err
			}
			gen.emit(OP_ADD, val)
			continue
		}

		if err := c.expect("-"); err != nil {
			return err
		}
		val, err := c.expectNumber()
		if err != nil {
			return err
		}
		gen.emit(OP_SUB, val)
	}

	gen.emit(OP_RET, 0)
	return nil
}

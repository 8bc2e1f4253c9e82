package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type ErrorKind int

const (
	ErrUsage  ErrorKind = iota // Bad command line
	ErrLex                     // Character the tokenizer cannot handle
	ErrSyntax                  // Token the grammar does not expect
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUsage:
		return "usage error"
	case ErrLex:
		return "lex error"
	case ErrSyntax:
		return "syntax error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// An error anchored at a byte offset of the input.
type CompileError struct {
	kind ErrorKind
	loc  int
	msg  string
}

func (e *CompileError) Error() string {
	if e.kind == ErrUsage {
		return e.msg
	}
	return fmt.Sprintf("%d: %s", e.loc, e.msg)
}

func errorAt(kind ErrorKind, loc int, format string, args ...any) *CompileError {
	return &CompileError{kind: kind, loc: loc, msg: fmt.Sprintf(format, args...)}
}

func errorTok(tok *Token, format string, args ...any) *CompileError {
	return errorAt(ErrSyntax, tok.loc, format, args...)
}

func usageError(format string, args ...any) *CompileError {
	return &CompileError{kind: ErrUsage, msg: fmt.Sprintf(format, args...)}
}

// Reports an error message in the following format.
//
//	foo.txt:1: 1 + x
//	               ^ cannot tokenize
//
// The file prefix is omitted when the input came from the command line.
// Errors without a location are printed as a single line.
func report(w io.Writer, file *File, err error) {
	var cerr *CompileError
	if !errors.As(err, &cerr) || cerr.kind == ErrUsage || file == nil {
		fmt.Fprintf(w, "%s\n", err)
		return
	}
	vreportAt(w, file, cerr.loc, cerr.msg)
}

func vreportAt(w io.Writer, file *File, loc int, msg string) {
	input := file.contents
	if loc > len(input) {
		loc = len(input)
	}

	// Find a line containing `loc`.
	line := loc
	for 0 < line && input[line-1] != '\n' {
		line--
	}

	end := loc
	for end < len(input) && input[end] != '\n' {
		end++
	}

	// Print out the line.
	indent := 0
	if file.name != "" {
		lineno := strings.Count(input[:line], "\n") + 1
		indent, _ = fmt.Fprintf(w, "%s:%d: ", file.name, lineno)
	}
	fmt.Fprintf(w, "%s\n", input[line:end])

	// Show the error message.
	pos := loc - line + indent
	fmt.Fprintf(w, "%*s", pos, "") // print pos spaces
	fmt.Fprintf(w, "^ %s\n", msg)
}

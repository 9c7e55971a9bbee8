// Package lex provides a forward, whitespace-delimited token stream over a
// VIPR certificate's ASCII text, tracking a 1-based line number for
// diagnostics. It performs no per-token allocation; callers that need a
// token to outlive the next call must copy it (typically into an
// pkg/arena.Arena).
package lex

import (
	"bufio"
	"io"
)

// Reader is a buffered, line-tracked token stream.
type Reader struct {
	src  *bufio.Reader
	line int
	// pending holds a byte read past the end of a token, to be re-examined
	// on the next call, avoiding an UnreadByte dance across buffer
	// refills.
	pending byte
	hasPend bool
	eof     bool
	// scratch is the growable token buffer reused by every NextToken call.
	scratch []byte
}

// NewReader wraps r with a Reader starting at line 1.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReaderSize(r, 64*1024), line: 1}
}

// Line returns the current 1-based line number: the line containing the
// most recently returned token, or the line about to be scanned if no
// token has been read yet.
func (r *Reader) Line() int { return r.line }

func (r *Reader) readByte() (byte, bool) {
	if r.hasPend {
		r.hasPend = false
		return r.pending, true
	}

	b, err := r.src.ReadByte()
	if err != nil {
		r.eof = true
		return 0, false
	}

	return b, true
}

func (r *Reader) unreadByte(b byte) {
	r.pending = b
	r.hasPend = true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// NextToken returns the next whitespace-separated token, skipping any line
// whose first token is the comment marker "%" in its entirety. It returns
// (nil, false) at end of stream.
func (r *Reader) NextToken() ([]byte, bool) {
	for {
		tok, ok := r.nextRawToken()
		if !ok {
			return nil, false
		}

		if len(tok) == 1 && tok[0] == '%' {
			r.skipLine()
			continue
		}

		return tok, true
	}
}

func (r *Reader) nextRawToken() ([]byte, bool) {
	// Skip leading whitespace, tracking newlines.
	var b byte

	var ok bool

	for {
		b, ok = r.readByte()
		if !ok {
			return nil, false
		}

		if b == '\n' {
			r.line++
			continue
		}

		if isSpace(b) {
			continue
		}

		break
	}

	buf := append(r.scratch[:0], b)

	for {
		b, ok = r.readByte()
		if !ok {
			break
		}

		if isSpace(b) {
			if b == '\n' {
				r.unreadByte(b)
			}

			break
		}

		buf = append(buf, b)
	}

	r.scratch = buf

	return buf, true
}

// skipLine discards the remainder of the current line (used after a "%"
// comment marker has already been consumed as a token).
func (r *Reader) skipLine() {
	for {
		b, ok := r.readByte()
		if !ok {
			return
		}

		if b == '\n' {
			r.line++
			return
		}
	}
}

// AtEOF reports whether the underlying stream is exhausted.
func (r *Reader) AtEOF() bool { return r.eof && !r.hasPend }

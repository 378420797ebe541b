// Package lenient turns the level editor's loose JSON dialect into strict JSON.
//
// The editor writes trailing commas, raw tabs and newlines between tokens, and
// in older files concatenates objects and arrays without a separator. Repair
// fixes exactly those three things outside of string literals and leaves
// string contents untouched.
package lenient

import (
	"bytes"
	"errors"
	"fmt"
)

// Stage names the step of decoding that failed.
type Stage string

const (
	StageRepair      Stage = "repair"
	StageStrictParse Stage = "strict-parse"
)

var errUnterminatedString = errors.New("unterminated string literal")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Error reports a failure to normalize or parse level text.
type Error struct {
	Stage  Stage
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("lenient: %s at offset %d: %v", e.Stage, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Repair rewrites src into strict JSON text.
func Repair(src []byte) ([]byte, error) {
	src = bytes.TrimPrefix(src, utf8BOM)
	out := make([]byte, 0, len(src)+16)

	inString := false
	stringStart := 0
	backslashes := 0
	// segStart is where the current non-string segment begins in out.
	segStart := 0

	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			out = append(out, c)
			switch {
			case c == '\\':
				backslashes++
				continue
			case c == '"' && backslashes%2 == 0:
				inString = false
				segStart = len(out)
			}
			backslashes = 0
			continue
		}

		switch c {
		case '\n', '\t':
			continue
		case '"':
			if backslashes%2 == 0 {
				inString = true
				stringStart = i
			}
			backslashes = 0
			out = append(out, c)
			continue
		case '\\':
			backslashes++
			out = append(out, c)
			continue
		case ']', '}':
			out = dropTrailingComma(out, segStart)
		case '[', '{':
			out = separateConcatenated(out, segStart)
		}
		backslashes = 0
		out = append(out, c)
	}

	if inString {
		return nil, &Error{Stage: StageRepair, Offset: int64(stringStart), Err: errUnterminatedString}
	}
	return out, nil
}

// dropTrailingComma removes ",   " from the end of out when it is inside
// the current non-string segment.
func dropTrailingComma(out []byte, segStart int) []byte {
	k := skipSpacesBack(out, segStart)
	if k >= segStart && out[k] == ',' {
		return out[:k]
	}
	return out
}

// separateConcatenated inserts a comma after a closer that is directly
// followed (modulo spaces) by the opener about to be written.
func separateConcatenated(out []byte, segStart int) []byte {
	k := skipSpacesBack(out, segStart)
	if k < segStart || (out[k] != ']' && out[k] != '}') {
		return out
	}
	tail := append([]byte(nil), out[k+1:]...)
	out = append(out[:k+1], ',')
	return append(out, tail...)
}

func skipSpacesBack(out []byte, segStart int) int {
	k := len(out) - 1
	for k >= segStart && (out[k] == ' ' || out[k] == '\r') {
		k--
	}
	return k
}

package lenient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

var errNotObject = errors.New("top-level value is not an object")

// Decode repairs src and parses it as a strict JSON object. Numbers are kept
// as json.Number so integer and float literals survive a save unchanged.
func Decode(src []byte) (map[string]any, error) {
	text, err := Repair(src)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, strictError(dec, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, strictError(dec, err)
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return nil, &Error{Stage: StageStrictParse, Err: errNotObject}
	}
	return obj, nil
}

// Query repairs src and evaluates a gjson path against it. It is meant for
// peeking at a few values without decoding the whole document.
func Query(src []byte, path string) (gjson.Result, error) {
	text, err := Repair(src)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(text) {
		return gjson.Result{}, &Error{Stage: StageStrictParse, Err: fmt.Errorf("invalid json")}
	}
	return gjson.GetBytes(text, path), nil
}

func strictError(dec *json.Decoder, err error) *Error {
	offset := dec.InputOffset()
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	return &Error{Stage: StageStrictParse, Offset: offset, Err: err}
}

package level

import (
	"encoding/json"
	"math"
	"strconv"
)

const (
	fieldFloor     = "floor"
	fieldEventType = "eventType"
)

// Event is an open record of named fields. Fields this package does not
// interpret are carried through to the saved file untouched.
type Event map[string]any

// Action is a game-logic event. It always carries a floor.
type Action struct {
	Event
}

// Decoration is a visual event. Without a floor it is global.
type Decoration struct {
	Event
}

// NewAction copies fields into a new action.
func NewAction(fields map[string]any) *Action {
	return &Action{Event: cloneFields(fields)}
}

// NewDecoration copies fields into a new decoration.
func NewDecoration(fields map[string]any) *Decoration {
	return &Decoration{Event: cloneFields(fields)}
}

// Floor returns the tile index the event is attached to. ok is false when
// the field is missing or is not an integer.
func (e Event) Floor() (floor int, ok bool) {
	v, present := e[fieldFloor]
	if !present {
		return 0, false
	}
	return asInt(v)
}

// SetFloor overwrites the floor field. Use the Level API to move events
// between tiles; this only edits the record.
func (e Event) SetFloor(floor int) {
	e[fieldFloor] = floor
}

// Type returns the eventType field, or "" when it is absent.
func (e Event) Type() string {
	s, _ := e[fieldEventType].(string)
	return s
}

func (e Event) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Event) Get(field string) (any, bool) {
	v, ok := e[field]
	return v, ok
}

// Set replaces the value of an existing field and reports whether it did.
func (e Event) Set(field string, value any) bool {
	if _, ok := e[field]; !ok {
		return false
	}
	e[field] = value
	return true
}

// Clone returns a deep copy of the record.
func (e Event) Clone() Event {
	return cloneFields(e)
}

// Predicate selects events for the query and mutation API.
type Predicate func(Event) bool

// All matches every event.
func All(Event) bool { return true }

// OfType matches events whose eventType equals eventType.
func OfType(eventType string) Predicate {
	return func(e Event) bool { return e.Type() == eventType }
}

func (p Predicate) match(e Event) bool {
	return p == nil || p(e)
}

func cloneFields(fields map[string]any) Event {
	out := make(Event, len(fields))
	for k, v := range fields {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Event:
		return cloneFields(t)
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// asInt accepts the numeric shapes a floor can arrive in: decoded numbers,
// values set from Go, and values decoded from YAML or scripts.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return asInt(f)
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// plain converts decoded values into types that YAML and tengo understand.
// json.Number becomes int64 when it is integral and float64 otherwise.
func plain(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case int:
		return int64(t)
	case Event:
		return plain(map[string]any(t))
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = plain(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = plain(vv)
		}
		return s
	default:
		return v
	}
}

package level

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const (
	filterEventVar = "event"
	filterMatchVar = "match"
)

// ScriptFilter is a Predicate written in tengo. The script sees the event's
// fields as the map `event` and must assign a truthy or falsy value to the
// global `match`.
//
//	match := event.eventType == "Twirl" && event.floor > 10
type ScriptFilter struct {
	compiled *tengo.Compiled
	err      error
}

// CompileFilter compiles a filter script.
func CompileFilter(src string) (*ScriptFilter, error) {
	script := tengo.NewScript([]byte(src))
	if err := script.Add(filterEventVar, map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("level: compile filter: %w", err)
	}
	return &ScriptFilter{compiled: compiled}, nil
}

// FilterExpr compiles a single boolean expression as a filter.
func FilterExpr(expr string) (*ScriptFilter, error) {
	return CompileFilter(filterMatchVar + " := (" + expr + ")")
}

// Match runs the script against e. A runtime error counts as no match and
// is kept for Err; later calls keep running.
func (f *ScriptFilter) Match(e Event) bool {
	ok, err := f.eval(e)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return false
	}
	return ok
}

// Predicate adapts the filter for the query API.
func (f *ScriptFilter) Predicate() Predicate {
	return f.Match
}

// Err returns the first runtime error seen by Match.
func (f *ScriptFilter) Err() error {
	return f.err
}

func (f *ScriptFilter) eval(e Event) (ok bool, err error) {
	// tengo lets some Go runtime panics escape Run, integer division by zero
	// among them.
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("level: run filter: %v", r)
		}
	}()

	if err := f.compiled.Set(filterEventVar, plain(e)); err != nil {
		return false, fmt.Errorf("level: filter input: %w", err)
	}
	if err := f.compiled.Run(); err != nil {
		return false, fmt.Errorf("level: run filter: %w", err)
	}
	v := f.compiled.Get(filterMatchVar)
	if v.IsUndefined() {
		return false, fmt.Errorf("level: filter did not set %q", filterMatchVar)
	}
	return v.Bool(), nil
}

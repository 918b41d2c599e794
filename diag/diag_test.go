package diag

import (
	stderrors "errors"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/zdef/errors"
)

func TestCollector(t *testing.T) {
	loc := errors.Location{File: "bind.lua", Line: 3}
	c := NewCollector()

	if c.Err() != nil {
		t.Error("empty collector should have no error")
	}

	c.Report(errors.UnknownType(loc, nil, "notatype"))
	c.Report(errors.LayoutConstraint(loc, nil, "container must be extern"))
	c.Report(errors.UnknownType(loc, nil, "other"))
	c.Report(nil)

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if c.Count(errors.KindUnknownType) != 2 {
		t.Errorf("Count(unknown_type) = %d", c.Count(errors.KindUnknownType))
	}
	if !c.HasKind(errors.KindLayoutConstraint) {
		t.Error("expected layout constraint diagnostic")
	}
	if c.HasKind(errors.KindSyntax) {
		t.Error("unexpected syntax diagnostic")
	}

	err := c.Err()
	if got := len(multierr.Errors(err)); got != 3 {
		t.Errorf("combined error has %d parts, want 3", got)
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseLayout, Kind: errors.KindLayoutConstraint}) {
		t.Error("combined error should match layout constraint")
	}

	if got := len(c.Since(1)); got != 2 {
		t.Errorf("Since(1) = %d entries, want 2", got)
	}
	if c.Since(5) != nil {
		t.Error("Since past end should be nil")
	}

	c.Reset()
	if c.Len() != 0 {
		t.Error("Reset should clear diagnostics")
	}
}

func TestCollectorLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := NewCollector().WithLogger(zap.New(core))

	c.Report(errors.MissingName(errors.Location{File: "a.lua", Line: 1}, []string{"fn"}, "function"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != string(errors.KindMissingName) {
		t.Errorf("kind field = %v", fields["kind"])
	}
	if fields["location"] != "a.lua:1" {
		t.Errorf("location field = %v", fields["location"])
	}
}

func TestTeeAndFunc(t *testing.T) {
	var seen []errors.Kind
	f := Func(func(err *errors.Error) { seen = append(seen, err.Kind) })
	c := NewCollector()

	r := Tee(f, nil, c)
	r.Report(errors.Syntax(errors.Location{}, "expected ';'"))

	if len(seen) != 1 || seen[0] != errors.KindSyntax {
		t.Errorf("func reporter saw %v", seen)
	}
	if c.Len() != 1 {
		t.Error("collector should receive the diagnostic")
	}

	Discard.Report(errors.Syntax(errors.Location{}, "ignored"))
}

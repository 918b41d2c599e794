// Package diag collects declaration diagnostics.
//
// Resolution never stops at the first semantic problem. Each problem is
// handed to a Reporter as a located *errors.Error and the walk continues with
// a fallback value, so one pass over a binding file surfaces every diagnostic.
package diag

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/zdef/errors"
)

// Reporter receives diagnostics.
type Reporter interface {
	Report(err *errors.Error)
}

// Func adapts a function to Reporter.
type Func func(err *errors.Error)

// Report implements Reporter.
func (f Func) Report(err *errors.Error) {
	f(err)
}

// Discard drops every diagnostic.
var Discard Reporter = Func(func(*errors.Error) {})

// Collector stores diagnostics in report order and logs each one.
type Collector struct {
	log   *zap.Logger
	diags []*errors.Error
}

// NewCollector creates a collector that logs through the package logger.
func NewCollector() *Collector {
	return &Collector{}
}

// WithLogger returns c logging to l instead of the package logger.
func (c *Collector) WithLogger(l *zap.Logger) *Collector {
	c.log = l
	return c
}

// Report implements Reporter.
func (c *Collector) Report(err *errors.Error) {
	if err == nil {
		return
	}
	c.diags = append(c.diags, err)

	l := c.log
	if l == nil {
		l = Logger()
	}
	l.Warn("declaration diagnostic",
		zap.String("phase", string(err.Phase)),
		zap.String("kind", string(err.Kind)),
		zap.Stringer("location", err.Location),
		zap.Strings("path", err.Path),
		zap.String("detail", err.Detail),
	)
}

// Diagnostics returns the collected diagnostics.
func (c *Collector) Diagnostics() []*errors.Error {
	return c.diags
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int {
	return len(c.diags)
}

// Count returns how many diagnostics have the given kind.
func (c *Collector) Count(kind errors.Kind) int {
	n := 0
	for _, d := range c.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// HasKind reports whether any diagnostic has the given kind.
func (c *Collector) HasKind(kind errors.Kind) bool {
	return c.Count(kind) > 0
}

// Err combines all diagnostics into one error, nil when there are none.
func (c *Collector) Err() error {
	var err error
	for _, d := range c.diags {
		err = multierr.Append(err, d)
	}
	return err
}

// Since returns diagnostics reported after the collector held n entries.
func (c *Collector) Since(n int) []*errors.Error {
	if n >= len(c.diags) {
		return nil
	}
	return c.diags[n:]
}

// Reset drops all collected diagnostics.
func (c *Collector) Reset() {
	c.diags = nil
}

// Tee fans each diagnostic out to every reporter.
func Tee(reporters ...Reporter) Reporter {
	return Func(func(err *errors.Error) {
		for _, r := range reporters {
			if r != nil {
				r.Report(err)
			}
		}
	})
}

package ffi

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/zdef"
	"github.com/wippyai/zdef/diag"
	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/ffi/internal/parser"
	"github.com/wippyai/zdef/layout"
	"github.com/wippyai/zdef/registry"
	"github.com/wippyai/zdef/symtab"
	"github.com/wippyai/zdef/types"
)

// Mode selects how a top-level const declaration is interpreted.
type Mode uint8

const (
	// ModeDeclaration accepts `const Name = extern struct {...};` only.
	ModeDeclaration Mode = iota
	// ModeTypeExpression resolves the declared type of `const x: T;`.
	ModeTypeExpression
)

func (m Mode) String() string {
	if m == ModeTypeExpression {
		return "type-expression"
	}
	return "declaration"
}

// Registry interns host types into canonical handles.
type Registry interface {
	Intern(h *types.HostType) *types.HostType
}

// DeclContext describes where a declaration comes from.
type DeclContext struct {
	// Symbols resolves names of previously declared extern structs.
	// Nil falls back to the engine's symbols.
	Symbols symtab.Resolver
	// Location is attached to every diagnostic of the declaration.
	Location errors.Location
}

// Options configures an Engine.
type Options struct {
	Registry  Registry
	Symbols   symtab.Resolver
	Allocator zdef.StringAllocator
	Reporter  diag.Reporter
	Logger    *zap.Logger
	// PointerSize is the target pointer width in bytes; 0 selects the platform.
	PointerSize uint32
}

// DefaultOptions returns options with a fresh registry and the platform
// pointer width.
func DefaultOptions() Options {
	return Options{
		Registry:    registry.New(),
		Allocator:   zdef.CloneAllocator{},
		PointerSize: layout.PlatformPointerSize,
	}
}

// Stats counts engine activity since creation or the last Reset.
type Stats struct {
	Parses      int
	CacheHits   int
	CacheMisses int
	Diagnostics int
}

// Engine is one declaration-resolution context.
//
// The cache, the unit symbol scope and the collected diagnostics belong to
// the engine; independent engines share nothing but the function id counter.
type Engine struct {
	registry Registry
	alloc    zdef.StringAllocator
	log      *zap.Logger
	calc     *layout.Calculator
	diags    *diag.Collector
	report   diag.Reporter
	cache    *declCache
	unit     *symtab.Table
	symbols  symtab.Resolver
	stats    Stats
	id       uuid.UUID
}

// New creates an engine. Zero-valued options are filled with defaults.
func New(opts Options) *Engine {
	if opts.Registry == nil {
		opts.Registry = registry.New()
	}
	if opts.Allocator == nil {
		opts.Allocator = zdef.CloneAllocator{}
	}
	if opts.Logger == nil {
		opts.Logger = Logger()
	}

	e := &Engine{
		registry: opts.Registry,
		alloc:    opts.Allocator,
		calc:     layout.NewCalculator(opts.PointerSize),
		cache:    newDeclCache(),
		symbols:  opts.Symbols,
		id:       uuid.New(),
	}
	e.log = opts.Logger.With(zap.String("engine", e.id.String()))
	e.diags = diag.NewCollector().WithLogger(e.log)
	e.report = e.diags
	if opts.Reporter != nil {
		e.report = diag.Tee(e.diags, opts.Reporter)
	}
	e.unit = symtab.NewWithParent(e.symbols)

	e.log.Debug("engine created", zap.Uint32("pointer_size", e.calc.PointerSize))
	return e
}

// ID identifies the engine in logs.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// PointerSize is the target pointer width in bytes.
func (e *Engine) PointerSize() uint32 {
	return e.calc.PointerSize
}

// Symbols returns the unit scope: structs defined by ParseUnit layered over
// Options.Symbols. Type expressions resolve names against it.
func (e *Engine) Symbols() *symtab.Table {
	return e.unit
}

// Diagnostics returns every diagnostic reported since the last Reset.
func (e *Engine) Diagnostics() []*errors.Error {
	return e.diags.Diagnostics()
}

// Stats returns activity counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Diagnostics = e.diags.Len()
	return s
}

// Reset drops the cache, the unit scope, diagnostics and counters. The
// registry is reset too when it supports it.
func (e *Engine) Reset() {
	e.cache = newDeclCache()
	e.unit = symtab.NewWithParent(e.symbols)
	e.diags.Reset()
	e.stats = Stats{}
	if r, ok := e.registry.(interface{ Reset() }); ok {
		r.Reset()
	}
	e.log.Debug("engine reset")
}

// ParseDeclaration parses src, which must hold exactly one declaration, and
// resolves it. The returned error is non-nil exactly when the descriptor is
// nil and combines the diagnostics that caused the failure. Diagnostics for
// problems that were recovered from are only delivered to the reporter.
func (e *Engine) ParseDeclaration(src string, dc *DeclContext, mode Mode) (*types.Descriptor, error) {
	return e.declaration(parser.Parse, src, dc, mode)
}

type parseFunc func(src string) (*ast.File, []*parser.Error)

func (e *Engine) declaration(pf parseFunc, src string, dc *DeclContext, mode Mode) (*types.Descriptor, error) {
	if dc == nil {
		dc = &DeclContext{}
	}
	mark := e.diags.Len()

	file, ok := e.parse(pf, src, func(ast.Pos) errors.Location { return dc.Location })
	if !ok {
		return nil, e.failure(mark)
	}

	switch n := len(file.Decls); {
	case n == 0:
		e.report.Report(errors.DeclarationCount(dc.Location, 0))
		return nil, e.failure(mark)
	case n > 1:
		e.report.Report(errors.DeclarationCount(dc.Location, n))
	}

	r := e.resolver(dc, mode)
	d := r.resolve(file.Decls[0], nil)
	if d == nil {
		return nil, e.failure(mark)
	}
	e.log.Debug("declaration resolved",
		zap.String("name", d.Name),
		zap.Stringer("abi", d.ABI),
		zap.Stringer("mode", mode),
	)
	return d, nil
}

// parse runs the sub-parser and reports syntax errors at the location
// chosen by at. Notes and repeated messages are not reported. ok is false
// when any syntax error occurred.
func (e *Engine) parse(pf parseFunc, src string, at func(ast.Pos) errors.Location) (*ast.File, bool) {
	e.stats.Parses++
	file, errs := pf(src)

	seen := make(map[string]bool, len(errs))
	for _, pe := range errs {
		if pe.Note {
			continue
		}
		loc := at(pe.Pos)
		key := loc.String() + "\x00" + pe.Msg
		if seen[key] {
			continue
		}
		seen[key] = true
		e.report.Report(errors.Syntax(loc, pe.Msg))
	}
	return file, len(errs) == 0
}

func (e *Engine) failure(mark int) error {
	diags := e.diags.Since(mark)
	if len(diags) == 0 {
		return errors.InvalidInput(errors.PhaseResolve, "declaration did not resolve")
	}
	errs := make([]error, len(diags))
	for i, d := range diags {
		errs[i] = d
	}
	return multierr.Combine(errs...)
}

func (e *Engine) resolver(dc *DeclContext, mode Mode) *resolver {
	symbols := dc.Symbols
	if symbols == nil {
		symbols = e.unit
	}
	return &resolver{
		engine:  e,
		symbols: symbols,
		loc:     dc.Location,
		mode:    mode,
	}
}

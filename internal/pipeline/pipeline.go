// Package pipeline sequences the extraction lifecycle: comments are
// pushed in source order by a walker, doclets are built and named as
// they arrive, and the cross-reference pass runs once traversal is
// complete. External plugins observe named stages through a context
// object rather than an ambient event bus, so ordering and mutation
// visibility stay explicit.
package pipeline

import (
	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/resolve"
	"github.com/doclet-labs/doclet/internal/scope"
	"github.com/doclet-labs/doclet/internal/tagdict"
)

// Stage names one point of the lifecycle, in execution order.
type Stage string

const (
	StageParseBegin         Stage = "parse-begin"
	StageCommentFound       Stage = "comment-found"
	StageDocletCreated      Stage = "doclet-created"
	StageCollectionComplete Stage = "collection-complete"
	StageProcessingComplete Stage = "processing-complete"
)

// SourceContext is what the walker knows about a construct before any
// tag is read: structural kind and name, location, and whether the
// construct is a module's default export. Tags may override all of it.
type SourceContext struct {
	File  string
	Line  int
	Kind  doclet.Kind
	Name  string
	Scope doclet.Scope // structural hint, e.g. a static class member

	// CodeKind is the walker's raw construct type, kept for meta.
	CodeKind string

	// DefaultExport marks the sole export of a module.
	DefaultExport bool

	// Standalone marks a comment not attached to any construct, such as
	// a file-level @module comment. A namespace scope it introduces
	// stays open until EndFile.
	Standalone bool
}

// Event is delivered to observers at each stage. Which fields are set
// depends on the stage.
type Event struct {
	Stage   Stage
	Comment string
	Source  SourceContext
	Doclet  *doclet.Doclet
}

// Observer is a registered stage callback. Observers run in
// registration order and may mutate the doclet and collection through
// the context. A failing observer is reported and the stage continues.
type Observer func(ctx *Context, ev *Event) error

// Context carries the shared state every stage sees: the active
// dictionary handle, the scope stack, the growing collection and the
// diagnostic channel.
type Context struct {
	Dict       *tagdict.Holder
	Scopes     *scope.Tracker
	Collection *doclet.Collection
	Reporter   diag.Reporter
}

// Pipeline drives the lifecycle for one run.
type Pipeline struct {
	ctx       *Context
	observers map[Stage][]Observer

	// fileMark is the scope depth at BeginFile; EndFile pops back to
	// it, closing any standalone namespace scopes opened in the file.
	fileMark int
	inFile   bool
}

// New returns a pipeline with an empty collection and scope stack.
func New(dict *tagdict.Holder, rep diag.Reporter) *Pipeline {
	if rep == nil {
		rep = diag.Nop{}
	}
	return &Pipeline{
		ctx: &Context{
			Dict:       dict,
			Scopes:     &scope.Tracker{},
			Collection: doclet.NewCollection(),
			Reporter:   rep,
		},
		observers: make(map[Stage][]Observer),
	}
}

// Context exposes the pipeline's shared state, mainly for observers
// registered from tests.
func (p *Pipeline) Context() *Context { return p.ctx }

// Collection returns the doclet collection.
func (p *Pipeline) Collection() *doclet.Collection { return p.ctx.Collection }

// Observe registers fn at the named stage.
func (p *Pipeline) Observe(stage Stage, fn Observer) {
	p.observers[stage] = append(p.observers[stage], fn)
}

func (p *Pipeline) emit(ev *Event) {
	for _, fn := range p.observers[ev.Stage] {
		if err := fn(p.ctx, ev); err != nil {
			diag.Errorf(p.ctx.Reporter, err, ev.Source.File, ev.Source.Line,
				"observer at %s failed: %v", ev.Stage, err)
		}
	}
}

// Begin starts the run.
func (p *Pipeline) Begin() {
	p.emit(&Event{Stage: StageParseBegin})
}

// BeginFile marks the start of one source file's traversal.
func (p *Pipeline) BeginFile() {
	p.fileMark = p.ctx.Scopes.Depth()
	p.inFile = true
}

// EndFile closes the file, popping any standalone namespace scopes the
// file's comments opened.
func (p *Pipeline) EndFile() error {
	p.inFile = false
	for p.ctx.Scopes.Depth() > p.fileMark {
		if _, err := p.ctx.Scopes.Pop(); err != nil {
			return err
		}
	}
	return nil
}

// Enter pushes a naming context. Driven by the walker for constructs
// whose bodies it descends into.
func (p *Pipeline) Enter(e scope.Entry) {
	p.ctx.Scopes.Push(e)
}

// Exit pops the innermost naming context.
func (p *Pipeline) Exit() error {
	_, err := p.ctx.Scopes.Pop()
	return err
}

// Comment processes one discovered comment/construct pair: builds the
// doclet, resolves its name against the current scope stack, and
// appends it to the collection. When the resulting doclet is
// namespace-introducing, a scope entry for its children is pushed;
// pushed reports whether the walker must Exit when leaving the
// construct (standalone scopes are closed by EndFile instead).
func (p *Pipeline) Comment(text string, src SourceContext) (d *doclet.Doclet, pushed bool, err error) {
	p.emit(&Event{Stage: StageCommentFound, Comment: text, Source: src})

	d = Build(text, src, p.ctx)
	if err := resolve.Name(d, p.ctx.Scopes); err != nil {
		return nil, false, err
	}
	p.ctx.Collection.Append(d)
	p.emit(&Event{Stage: StageDocletCreated, Comment: text, Source: src, Doclet: d})

	if p.ctx.Dict.Active().IsNamespaceKind(d.Kind) {
		entry := scope.EntryForKind(d.Kind, d.Longname)
		entry.Lends = d.Overrides.Lends
		p.ctx.Scopes.Push(entry)
		pushed = !src.Standalone
	}
	return d, pushed, nil
}

// Finish is the barrier between traversal and cross-reference
// resolution. A non-empty scope stack here is a walker integration bug
// and aborts the run.
func (p *Pipeline) Finish() error {
	if depth := p.ctx.Scopes.Depth(); depth != 0 {
		return derrors.Wrapf(derrors.ErrScopeImbalance,
			"traversal ended at depth %d", depth)
	}
	p.emit(&Event{Stage: StageCollectionComplete})
	resolve.All(p.ctx.Collection, p.ctx.Reporter)
	p.emit(&Event{Stage: StageProcessingComplete})
	return nil
}

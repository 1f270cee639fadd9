package walker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/pipeline"
	"github.com/doclet-labs/doclet/internal/tagdict"
)

func runWalk(t *testing.T, source string) *doclet.Collection {
	t.Helper()
	dict, err := tagdict.Builtin(tagdict.GrammarStandard, false)
	require.NoError(t, err)
	p := pipeline.New(tagdict.NewHolder(dict), diag.Nop{})
	p.Begin()

	require.NoError(t, New().Walk(context.Background(), []byte(source), "test.js", p))
	require.NoError(t, p.Finish())
	return p.Collection()
}

func TestWalkClassWithMethods(t *testing.T) {
	c := runWalk(t, `
/** A drawable widget. */
class Widget {
  /** Draws the widget. */
  draw() {}

  /** Creates a widget. */
  static create() {}
}
`)

	cls := c.First("Widget")
	require.NotNil(t, cls)
	assert.Equal(t, doclet.KindClass, cls.Kind)
	assert.Equal(t, "A drawable widget.", cls.Description)
	assert.Equal(t, 3, cls.Meta.Line)

	draw := c.First("Widget#draw")
	require.NotNil(t, draw)
	assert.Equal(t, doclet.KindFunction, draw.Kind)
	assert.Equal(t, doclet.ScopeInstance, draw.Scope)

	create := c.First("Widget.create")
	require.NotNil(t, create)
	assert.Equal(t, doclet.ScopeStatic, create.Scope)
}

func TestWalkModuleExports(t *testing.T) {
	c := runWalk(t, `
/** @module color/mixer */

/** Blends two colors. */
module.exports.blend = function (a, b) {};
`)

	mod := c.First("module:color/mixer")
	require.NotNil(t, mod)
	assert.Equal(t, doclet.KindModule, mod.Kind)

	blend := c.First("module:color/mixer.blend")
	require.NotNil(t, blend)
	assert.Equal(t, doclet.KindFunction, blend.Kind)
	assert.Equal(t, doclet.ScopeStatic, blend.Scope)
	assert.Equal(t, "module:color/mixer", blend.Memberof)
}

func TestWalkDefaultExport(t *testing.T) {
	c := runWalk(t, `
/** @module color/mixer */

/** Mixes everything. */
module.exports = function mix() {};
`)

	docs := c.ByLongname("module:color/mixer")
	require.Len(t, docs, 2, "module doclet plus its default export")
	export := docs[1]
	assert.True(t, export.DefaultExport)
	assert.Equal(t, doclet.KindFunction, export.Kind)
	assert.Empty(t, export.Memberof)
	assert.Empty(t, c.Globals(), "neither module nor export is a global")
}

func TestWalkConstAndFunction(t *testing.T) {
	c := runWalk(t, `
/** Supported formats. */
const FORMATS = ['yaml', 'json'];

/** Parses a format name. */
function parseFormat(name) {}
`)

	f := c.First("FORMATS")
	require.NotNil(t, f)
	assert.Equal(t, doclet.KindConstant, f.Kind)

	fn := c.First("parseFormat")
	require.NotNil(t, fn)
	assert.Equal(t, doclet.KindFunction, fn.Kind)
	assert.Equal(t, doclet.ScopeGlobal, fn.Scope)
}

func TestWalkInnerSymbol(t *testing.T) {
	c := runWalk(t, `
/** Outer function. */
function outer() {
  /** Inner helper. */
  function helper() {}
}
`)

	inner := c.First("outer~helper")
	require.NotNil(t, inner)
	assert.Equal(t, doclet.ScopeInner, inner.Scope)
	assert.Equal(t, "outer", inner.Memberof)
}

func TestWalkUndocumentedConstructs(t *testing.T) {
	c := runWalk(t, `
class Quiet {}

/** Documented. */
function loud() {}
`)

	quiet := c.First("Quiet")
	require.NotNil(t, quiet)
	assert.True(t, quiet.Undocumented)

	loud := c.First("loud")
	require.NotNil(t, loud)
	assert.False(t, loud.Undocumented)
}

func TestWalkTagOverridesStructure(t *testing.T) {
	c := runWalk(t, `
/**
 * Not really a member.
 * @function renamed
 * @memberof ns
 */
const whatever = 1;
`)

	d := c.First("ns.renamed")
	require.NotNil(t, d)
	assert.Equal(t, doclet.KindFunction, d.Kind)
	assert.Equal(t, "whatever", d.Meta.CodeName)
}

func TestWalkNonDocCommentsIgnored(t *testing.T) {
	c := runWalk(t, `
// plain comment, not documentation
/* block but not doc */
function f() {}
`)

	d := c.First("f")
	require.NotNil(t, d)
	assert.True(t, d.Undocumented)
}

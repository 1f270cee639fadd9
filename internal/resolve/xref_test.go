package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
)

func resolved(kind doclet.Kind, name, memberof string, s doclet.Scope) *doclet.Doclet {
	d := doclet.New(kind, name)
	d.Memberof = memberof
	d.Scope = s
	d.Longname = Derive(d)
	d.State = doclet.StateNameResolved
	return d
}

func TestListensBackReference(t *testing.T) {
	c := doclet.NewCollection()
	event := resolved(doclet.KindEvent, "event:ready", "Widget", doclet.ScopeInstance)
	listener := resolved(doclet.KindFunction, "onReady", "", doclet.ScopeGlobal)
	listener.Listens = []string{"Widget#event:ready"}
	c.Append(event)
	c.Append(listener)

	All(c, diag.Nop{})
	assert.Equal(t, []string{"onReady"}, event.Listeners)

	// Re-running the pass never duplicates the back-reference.
	All(c, diag.Nop{})
	assert.Equal(t, []string{"onReady"}, event.Listeners)
}

func TestListensMissingTargetIsSilent(t *testing.T) {
	c := doclet.NewCollection()
	listener := resolved(doclet.KindFunction, "onReady", "", doclet.ScopeGlobal)
	listener.Listens = []string{"Nowhere#event:gone"}
	c.Append(listener)

	var col diag.Collector
	All(c, &col)
	assert.Zero(t, col.Count(diag.Info))
}

func TestBorrowsMaterialization(t *testing.T) {
	c := doclet.NewCollection()
	source := resolved(doclet.KindFunction, "trim", "util", doclet.ScopeStatic)
	source.Description = "Removes whitespace."
	owner := resolved(doclet.KindNamespace, "str", "", doclet.ScopeGlobal)
	owner.Borrowed = []doclet.Borrow{{From: "util.trim", As: "myTrim"}}
	c.Append(source)
	c.Append(owner)

	All(c, diag.Nop{})

	clone := c.First("str.myTrim")
	require.NotNil(t, clone)
	assert.Equal(t, "myTrim", clone.Name)
	assert.Equal(t, "str", clone.Memberof)
	assert.Equal(t, doclet.ScopeStatic, clone.Scope)
	assert.Equal(t, "Removes whitespace.", clone.Description)
	assert.Equal(t, doclet.KindFunction, clone.Kind)

	// Idempotent: a second pass adds nothing.
	before := c.Len()
	All(c, diag.Nop{})
	assert.Equal(t, before, c.Len())
	assert.Len(t, c.ByLongname("str.myTrim"), 1)
}

func TestBorrowsDanglingSource(t *testing.T) {
	c := doclet.NewCollection()
	owner := resolved(doclet.KindNamespace, "str", "", doclet.ScopeGlobal)
	owner.Borrowed = []doclet.Borrow{{From: "util.gone", As: "myTrim"}}
	c.Append(owner)

	var col diag.Collector
	All(c, &col)
	require.Equal(t, 1, col.Count(diag.Error))
	assert.Equal(t, diag.Error, col.All()[0].Severity)
	assert.Nil(t, c.First("str.myTrim"))
}

func TestDanglingReferencesReported(t *testing.T) {
	c := doclet.NewCollection()
	base := resolved(doclet.KindClass, "Base", "", doclet.ScopeGlobal)
	sub := resolved(doclet.KindClass, "Sub", "", doclet.ScopeGlobal)
	sub.Augments = []string{"Base", "Vanished"}
	sub.Mixes = []string{"GoneMixin"}
	c.Append(base)
	c.Append(sub)

	var col diag.Collector
	All(c, &col)
	assert.Equal(t, 2, col.Count(diag.Error))
	// The authored entries stay untouched.
	assert.Equal(t, []string{"Base", "Vanished"}, sub.Augments)
}

func TestCrossReferenceSetsState(t *testing.T) {
	c := doclet.NewCollection()
	d := resolved(doclet.KindFunction, "f", "", doclet.ScopeGlobal)
	c.Append(d)

	All(c, diag.Nop{})
	assert.Equal(t, doclet.StateCrossReferenced, d.State)
}

func TestAncestorsNearestFirst(t *testing.T) {
	c := doclet.NewCollection()
	mod := resolved(doclet.KindModule, "module:store", "", doclet.ScopeGlobal)
	cls := resolved(doclet.KindClass, "Cart", "module:store", doclet.ScopeStatic)
	method := resolved(doclet.KindFunction, "add", "module:store.Cart", doclet.ScopeInstance)
	c.Append(mod)
	c.Append(cls)
	c.Append(method)

	got := Ancestors(c, method, diag.Nop{})
	assert.Equal(t, []string{"module:store.Cart", "module:store"}, got)
}

func TestAncestorsDanglingParentStops(t *testing.T) {
	c := doclet.NewCollection()
	d := resolved(doclet.KindFunction, "add", "Missing", doclet.ScopeStatic)
	c.Append(d)

	got := Ancestors(c, d, diag.Nop{})
	assert.Equal(t, []string{"Missing"}, got)
}

func TestAncestorsCycleTruncated(t *testing.T) {
	c := doclet.NewCollection()
	a := resolved(doclet.KindNamespace, "A", "", doclet.ScopeGlobal)
	b := resolved(doclet.KindNamespace, "B", "", doclet.ScopeGlobal)
	// Malformed collection: each claims the other as its parent.
	a.Memberof = "B"
	b.Memberof = "A"
	c.Append(a)
	c.Append(b)

	var col diag.Collector
	got := Ancestors(c, a, &col)
	assert.Equal(t, []string{"B"}, got, "chain stops before revisiting the start symbol")
	assert.Equal(t, 1, col.Count(diag.Error), "cycle reported exactly once")
}

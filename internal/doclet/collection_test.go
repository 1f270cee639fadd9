package doclet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(kind Kind, name, longname string) *Doclet {
	d := New(kind, name)
	d.Longname = longname
	return d
}

func TestCollectionMultimap(t *testing.T) {
	c := NewCollection()

	first := named(KindFunction, "parse", "util.parse")
	second := named(KindFunction, "parse", "util.parse") // overload
	c.Append(first)
	c.Append(second)

	ds := c.ByLongname("util.parse")
	require.Len(t, ds, 2, "overloads share a longname")
	assert.Same(t, first, c.First("util.parse"))
	assert.Equal(t, 2, c.Len())
	assert.Nil(t, c.First("util.missing"))
}

func TestCollectionQuery(t *testing.T) {
	c := NewCollection()
	pub := named(KindFunction, "a", "ns.a")
	pub.Access = AccessPublic
	pub.Memberof = "ns"
	priv := named(KindFunction, "b", "ns.b")
	priv.Access = AccessPrivate
	priv.Memberof = "ns"
	other := named(KindMember, "c", "other.c")
	other.Memberof = "other"
	c.Append(pub)
	c.Append(priv)
	c.Append(other)

	assert.Len(t, c.Query(Filter{Kind: KindFunction}), 2)
	assert.Len(t, c.Query(Filter{Access: AccessPrivate}), 1)

	ns := "ns"
	assert.Len(t, c.Query(Filter{Memberof: &ns}), 2)

	global := ""
	assert.Empty(t, c.Query(Filter{Memberof: &global}))
}

func TestGlobalsExcludesDefaultExportsAndModules(t *testing.T) {
	c := NewCollection()

	globalFn := named(KindFunction, "helper", "helper")
	module := named(KindModule, "mathlib", "module:mathlib")
	export := named(KindFunction, Anonymous, "module:mathlib")
	export.DefaultExport = true
	member := named(KindMember, "x", "ns.x")
	member.Memberof = "ns"
	ignored := named(KindFunction, "hidden", "hidden")
	ignored.Ignore = true
	anon := named(KindFunction, Anonymous, Anonymous)

	for _, d := range []*Doclet{globalFn, module, export, member, ignored, anon} {
		c.Append(d)
	}

	globals := c.Globals()
	require.Len(t, globals, 1)
	assert.Same(t, globalFn, globals[0])
}

func TestLongnamesSorted(t *testing.T) {
	c := NewCollection()
	c.Append(named(KindMember, "b", "b"))
	c.Append(named(KindMember, "a", "a"))
	c.Append(named(KindMember, "a2", "a")) // duplicate longname
	assert.Equal(t, []string{"a", "b"}, c.Longnames())
}

func TestHasTagAndAnonymous(t *testing.T) {
	d := New(KindFunction, Anonymous)
	d.Tags = append(d.Tags, Tag{Title: "since", Text: "1.0"})
	assert.True(t, d.HasTag("since"))
	assert.False(t, d.HasTag("deprecated"))
	assert.True(t, d.IsAnonymous())
}

package tagdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
)

func TestLookupResolvesSynonyms(t *testing.T) {
	d := Standard(false)

	tests := []struct {
		name      string
		canonical string
	}{
		{"param", "param"},
		{"arg", "param"},
		{"argument", "param"},
		{"returns", "returns"},
		{"return", "returns"},
		{"extends", "augments"},
		{"virtual", "abstract"},
		{"const", "constant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := d.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.canonical, def.Name)
			assert.Equal(t, tt.canonical, d.Normalize(tt.name))
		})
	}

	_, ok := d.Lookup("no-such-tag")
	assert.False(t, ok)
}

func TestDefineOverrideDropsOldSynonyms(t *testing.T) {
	d := New("test", false)
	d.Define(&TagDef{Name: "thing", Synonyms: []string{"alias1"}})
	d.Define(&TagDef{Name: "thing", Synonyms: []string{"alias2"}})

	_, ok := d.Lookup("alias1")
	assert.False(t, ok, "replaced definition's synonyms must be dropped")
	def, ok := d.Lookup("alias2")
	require.True(t, ok)
	assert.Equal(t, "thing", def.Name)
}

func TestNamespaceKinds(t *testing.T) {
	d := Standard(false)

	for _, kind := range []doclet.Kind{
		doclet.KindClass, doclet.KindModule, doclet.KindNamespace,
		doclet.KindMixin, doclet.KindInterface, doclet.KindExternal,
	} {
		assert.True(t, d.IsNamespaceKind(kind), "%s should introduce a namespace", kind)
	}
	for _, kind := range []doclet.Kind{
		doclet.KindFunction, doclet.KindMember, doclet.KindConstant, doclet.KindEvent,
	} {
		assert.False(t, d.IsNamespaceKind(kind), "%s should not introduce a namespace", kind)
	}

	kinds := d.NamespaceKinds()
	assert.Contains(t, kinds, doclet.KindClass)
	assert.Contains(t, kinds, doclet.KindModule)
}

func TestHolderReplaceIsReversible(t *testing.T) {
	standard := Standard(false)
	closure := Closure(false)
	holder := NewHolder(standard)

	// Record lookups for every tag name before the swap.
	before := make(map[string]bool)
	for _, name := range standard.TagNames() {
		_, before[name] = holder.Active().Lookup(name)
	}
	_, before["final"] = holder.Active().Lookup("final")

	prev := holder.Replace(closure)
	assert.Same(t, standard, prev)
	assert.Same(t, closure, holder.Active())

	// Restore and verify every lookup result is identical.
	holder.Replace(prev)
	assert.Same(t, standard, holder.Active())
	for name, want := range before {
		_, got := holder.Active().Lookup(name)
		assert.Equal(t, want, got, "lookup %q changed across swap+restore", name)
	}
}

func TestBuiltinGrammarsOverlapButDiffer(t *testing.T) {
	standard := Standard(false)
	closure := Closure(false)

	// Shared core.
	for _, name := range []string{"param", "type", "class", "module", "augments"} {
		_, ok := standard.Lookup(name)
		assert.True(t, ok, "standard should know @%s", name)
		_, ok = closure.Lookup(name)
		assert.True(t, ok, "closure should know @%s", name)
	}

	// Standard-only relationship tags.
	for _, name := range []string{"borrows", "listens", "mixes", "fires", "external"} {
		_, ok := standard.Lookup(name)
		assert.True(t, ok, "standard should know @%s", name)
		_, ok = closure.Lookup(name)
		assert.False(t, ok, "closure should not know @%s", name)
	}

	// Closure-only annotations.
	for _, name := range []string{"final", "struct", "dict", "inheritDoc", "nosideeffects"} {
		_, ok := closure.Lookup(name)
		assert.True(t, ok, "closure should know @%s", name)
		_, ok = standard.Lookup(name)
		assert.False(t, ok, "standard should not know @%s", name)
	}
}

func TestBuiltinReturnsFreshCopies(t *testing.T) {
	a := Standard(false)
	b := Standard(false)

	a.Define(&TagDef{Name: "custom", Effect: EffectNone})
	_, ok := b.Lookup("custom")
	assert.False(t, ok, "mutating one built-in copy must not leak into another")
}

func TestBuiltinByName(t *testing.T) {
	d, err := Builtin(GrammarClosure, true)
	require.NoError(t, err)
	assert.Equal(t, GrammarClosure, d.Name)
	assert.True(t, d.AllowUnknown)

	_, err = Builtin("esoteric", false)
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrUnknownGrammar))
}

func TestOnBorrowsParsing(t *testing.T) {
	tests := []struct {
		raw      string
		wantFrom string
		wantAs   string
	}{
		{"trstr as trim", "trstr", "trim"},
		{"util.trim", "util.trim", "trim"},
		{"Foo#bar as baz", "Foo#bar", "baz"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d := doclet.New(doclet.KindNamespace, "util")
			err := onBorrows(d, &Value{Raw: tt.raw})
			require.NoError(t, err)
			require.Len(t, d.Borrowed, 1)
			assert.Equal(t, tt.wantFrom, d.Borrowed[0].From)
			assert.Equal(t, tt.wantAs, d.Borrowed[0].As)
		})
	}
}

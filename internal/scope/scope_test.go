package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
)

func TestPunctuation(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindGlobal, "."},
		{KindStatic, "."},
		{KindInstance, "#"},
		{KindInner, "~"},
		{KindAnonymous, "~"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Punctuation(), string(tt.kind))
	}

	assert.Equal(t, ".", PunctuationFor(doclet.ScopeStatic))
	assert.Equal(t, "#", PunctuationFor(doclet.ScopeInstance))
	assert.Equal(t, "~", PunctuationFor(doclet.ScopeInner))
}

func TestEntryForKind(t *testing.T) {
	tests := []struct {
		kind doclet.Kind
		want Kind
	}{
		{doclet.KindClass, KindInstance},
		{doclet.KindInterface, KindInstance},
		{doclet.KindMixin, KindInstance},
		{doclet.KindFunction, KindInner},
		{doclet.KindModule, KindStatic},
		{doclet.KindNamespace, KindStatic},
	}
	for _, tt := range tests {
		e := EntryForKind(tt.kind, "Owner")
		assert.Equal(t, tt.want, e.Kind, string(tt.kind))
		assert.Equal(t, "Owner", e.Owner)
	}
}

func TestTrackerStackDiscipline(t *testing.T) {
	var tr Tracker

	_, ok := tr.Current()
	assert.False(t, ok)

	tr.Push(Entry{Kind: KindStatic, Owner: "module:a"})
	tr.Push(Entry{Kind: KindInstance, Owner: "module:a.Widget"})

	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, "module:a.Widget", cur.Owner)
	assert.Equal(t, 2, tr.Depth())

	popped, err := tr.Pop()
	require.NoError(t, err)
	assert.Equal(t, "module:a.Widget", popped.Owner)

	_, err = tr.Pop()
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Depth())
}

func TestPopEmptyIsFatal(t *testing.T) {
	var tr Tracker
	_, err := tr.Pop()
	require.Error(t, err)
	assert.True(t, derrors.Is(err, derrors.ErrScopeImbalance))
}

func TestLendsRedirectsOwner(t *testing.T) {
	e := Entry{Kind: KindStatic, Owner: "<anonymous>", Lends: "Widget.prototype"}
	assert.Equal(t, "Widget.prototype", e.EffectiveOwner())

	plain := Entry{Kind: KindStatic, Owner: "ns"}
	assert.Equal(t, "ns", plain.EffectiveOwner())
}

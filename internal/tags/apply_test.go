package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/diag"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/tagdict"
)

func applyTo(t *testing.T, comment string, dict *tagdict.Dictionary) (*doclet.Doclet, *diag.Collector) {
	t.Helper()
	d := doclet.New(doclet.KindMember, "subject")
	rep := &diag.Collector{}
	Apply(d, comment, dict, rep)
	return d, rep
}

func TestApplySetsScalars(t *testing.T) {
	d, rep := applyTo(t, `/**
 * A well-described symbol.
 * @name renamed
 * @access protected
 * @since 2.0.0
 * @deprecated use something else
 * @readonly
 */`, tagdict.Standard(false))

	assert.Empty(t, rep.All())
	assert.Equal(t, "A well-described symbol.", d.Description)
	assert.Equal(t, "renamed", d.Name)
	assert.Equal(t, "renamed", d.Overrides.Name)
	assert.Equal(t, doclet.AccessProtected, d.Access)
	assert.Equal(t, "2.0.0", d.Since)
	assert.Equal(t, "use something else", d.Deprecated)
	assert.True(t, d.Readonly)
	assert.Equal(t, doclet.StateTagsApplied, d.State)
}

func TestRepeatableTagsAccumulate(t *testing.T) {
	single, _ := applyTo(t, "/** @param {number} a first */", tagdict.Standard(false))
	require.Len(t, single.Params, 1)
	assert.Equal(t, "a", single.Params[0].Name)

	many, rep := applyTo(t, `/**
 * @param {number} a first
 * @param {number} b second
 * @param {number} c third
 * @fires event:grow
 * @fires event:shrink
 */`, tagdict.Standard(false))

	assert.Empty(t, rep.All())
	require.Len(t, many.Params, 3)
	names := []string{many.Params[0].Name, many.Params[1].Name, many.Params[2].Name}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
	assert.ElementsMatch(t, []string{"event:grow", "event:shrink"}, many.Fires)
}

func TestParamValueParsing(t *testing.T) {
	tests := []struct {
		comment      string
		wantName     string
		wantOptional bool
		wantDefault  string
		wantDesc     string
	}{
		{"/** @param {string} name the name */", "name", false, "", "the name"},
		{"/** @param {string} [name] optional name */", "name", true, "", "optional name"},
		{"/** @param {string} [name=guest] with default */", "name", true, "guest", "with default"},
		{"/** @param {number=} count - dashed description */", "count", true, "", "dashed description"},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			d, _ := applyTo(t, tt.comment, tagdict.Standard(false))
			require.Len(t, d.Params, 1)
			p := d.Params[0]
			assert.Equal(t, tt.wantName, p.Name)
			assert.Equal(t, tt.wantOptional, p.Optional)
			assert.Equal(t, tt.wantDefault, p.Default)
			assert.Equal(t, tt.wantDesc, p.Description)
		})
	}
}

func TestDictionaryDependentRecognition(t *testing.T) {
	// The same literal input: @final is a closure tag, unknown to the
	// standard grammar.
	const input = "/** @final */"

	_, standardRep := applyTo(t, input, tagdict.Standard(false))
	require.Len(t, standardRep.All(), 1)
	assert.True(t, derrors.Is(standardRep.All()[0].Err, derrors.ErrUnknownTag))

	closureDoclet, closureRep := applyTo(t, input, tagdict.Closure(false))
	assert.Empty(t, closureRep.All())
	assert.True(t, closureDoclet.Readonly)
}

func TestUnknownTagAllowed(t *testing.T) {
	d, rep := applyTo(t, "/** @whimsical extremely */", tagdict.Standard(true))
	assert.Empty(t, rep.All())
	require.Len(t, d.Tags, 1)
	assert.Equal(t, "whimsical", d.Tags[0].Title)
	assert.Equal(t, "extremely", d.Tags[0].Text)
	assert.True(t, d.Tags[0].Unknown)
}

func TestMissingRequiredValueIsSkipped(t *testing.T) {
	d, rep := applyTo(t, `/**
 * @name
 * @since 1.0.0
 */`, tagdict.Standard(false))

	// The bad tag is reported and skipped; later tags still apply.
	require.Len(t, rep.All(), 1)
	assert.True(t, derrors.Is(rep.All()[0].Err, derrors.ErrTagValue))
	assert.Equal(t, "subject", d.Name)
	assert.Equal(t, "1.0.0", d.Since)
}

func TestMalformedTypeKeepsRawFallback(t *testing.T) {
	d, rep := applyTo(t, "/** @type {Array.<string} */", tagdict.Standard(false))

	require.Len(t, rep.All(), 1)
	assert.True(t, derrors.Is(rep.All()[0].Err, derrors.ErrTypeExpression))
	assert.Nil(t, d.Type)
	assert.Equal(t, "Array.<string", d.TypeText)
}

func TestKindReassignment(t *testing.T) {
	d, _ := applyTo(t, "/** @class Widget */", tagdict.Standard(false))
	assert.Equal(t, doclet.KindClass, d.Kind)
	assert.Equal(t, "Widget", d.Name)

	viaKind, rep := applyTo(t, "/** @kind constant */", tagdict.Standard(false))
	assert.Empty(t, rep.All())
	assert.Equal(t, doclet.KindConstant, viaKind.Kind)

	_, badRep := applyTo(t, "/** @kind gadget */", tagdict.Standard(false))
	require.Len(t, badRep.All(), 1)
	assert.True(t, derrors.Is(badRep.All()[0].Err, derrors.ErrTagValue))
}

func TestScopeAndAccessShorthand(t *testing.T) {
	d, _ := applyTo(t, `/**
 * @private
 * @inner
 */`, tagdict.Standard(false))
	assert.Equal(t, doclet.AccessPrivate, d.Access)
	assert.Equal(t, doclet.ScopeInner, d.Scope)

	global, _ := applyTo(t, "/** @global */", tagdict.Standard(false))
	assert.Equal(t, doclet.ScopeGlobal, global.Scope)
}

func TestReturnsAndYields(t *testing.T) {
	d, rep := applyTo(t, `/**
 * @returns {number} the computed total
 * @yields {string} each line
 */`, tagdict.Standard(false))

	assert.Empty(t, rep.All())
	require.Len(t, d.Returns, 1)
	assert.Equal(t, "number", d.Returns[0].Type.Name)
	assert.Equal(t, "the computed total", d.Returns[0].Description)
	require.Len(t, d.Yields, 1)
	assert.Equal(t, "each line", d.Yields[0].Description)
}

func TestOrderedTagSequenceRetained(t *testing.T) {
	d, _ := applyTo(t, `/**
 * @since 1.0.0
 * @readonly
 * @see elsewhere
 */`, tagdict.Standard(false))

	require.Len(t, d.Tags, 3)
	assert.Equal(t, "since", d.Tags[0].Title)
	assert.Equal(t, "readonly", d.Tags[1].Title)
	assert.Equal(t, "see", d.Tags[2].Title)
}

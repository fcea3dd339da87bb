package runtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/grammar"
	"quartz/internal/yul"
)

func TestHelperNames(t *testing.T) {
	assert.Equal(t, "Quartz$Add", Add.Name())
	assert.Equal(t, "Quartz$StorageDictionaryOffsetForKey", StorageDictionaryOffsetForKey.Name())
	assert.Equal(t, "Helper(99)", Helper(99).String())
}

func TestLookup(t *testing.T) {
	for _, h := range All() {
		got, ok := Lookup(h.Name())
		require.True(t, ok, h.String())
		assert.Equal(t, h, got)
	}

	_, ok := Lookup("Add")
	assert.False(t, ok, "unprefixed names are not helpers")
	_, ok = Lookup("Quartz$Nope")
	assert.False(t, ok)
}

func TestEverySourceParsesAndMatchesItsSignature(t *testing.T) {
	for _, h := range All() {
		t.Run(h.String(), func(t *testing.T) {
			stmts, err := grammar.Parse(h.Name(), h.Source())
			require.NoError(t, err)
			require.Len(t, stmts, 1)

			fn, ok := stmts[0].(*yul.FunctionDefinition)
			require.True(t, ok)
			assert.Equal(t, h.Name(), fn.Name)
			assert.Len(t, fn.Params, h.Arity())
		})
	}
}

func TestHelpersOnlyCallDefinedHelpers(t *testing.T) {
	for _, h := range All() {
		for _, word := range strings.FieldsFunc(h.Source(), func(r rune) bool {
			return r == '(' || r == ')' || r == ' ' || r == ',' || r == '\n'
		}) {
			if strings.HasPrefix(word, Prefix) {
				_, ok := Lookup(word)
				assert.True(t, ok, "%s references unknown helper %s", h, word)
			}
		}
	}
}

func TestLibrary(t *testing.T) {
	lib := Library()
	assert.Len(t, lib, len(All()))

	text, err := yul.PrintIndented(0, lib...)
	require.NoError(t, err)
	assert.Equal(t, LibrarySource(), text)

	stmts, err := grammar.Parse("library.yul", text)
	require.NoError(t, err)
	assert.Len(t, stmts, len(All()))
}

func TestCall(t *testing.T) {
	out, err := yul.Print(Add.Call(yul.Ident("a"), yul.Num(1)))
	require.NoError(t, err)
	assert.Equal(t, "Quartz$Add(a, 1)", out)

	out, err = yul.Print(Selector.Call())
	require.NoError(t, err)
	assert.Equal(t, "Quartz$Selector()", out)
}

func TestGuardOf(t *testing.T) {
	tests := []struct {
		name     string
		frames   []string
		expected Guard
	}{
		{"no frames", nil, GuardNone},
		{"user function", []string{"Counter$increment"}, GuardNone},
		{"checked add", []string{"Counter$increment", "Quartz$Add"}, GuardOverflow},
		{"innermost wins", []string{"Quartz$StorageArrayOffset", "Quartz$Add"}, GuardOverflow},
		{"skips neutral helpers", []string{"Quartz$StorageFixedSizeArrayOffset", "Quartz$IsInvalidSubscriptExpression"}, GuardOutOfBounds},
		{"division", []string{"Quartz$Div"}, GuardDivisionByZero},
		{"non payable", []string{"Quartz$CheckNoValue"}, GuardNonPayable},
		{"cast", []string{"f", "Quartz$RevertIfGreater"}, GuardNarrowingCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GuardOf(tt.frames))
		})
	}
}

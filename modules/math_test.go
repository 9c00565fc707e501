package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajkachnic/tern/core"
)

func TestInitialize(t *testing.T) {
	ctx := core.NewContext(core.DefaultConfig())
	require.NoError(t, Initialize(&ctx))
	assert.Equal(t, []string{"math"}, ctx.ModuleNames())
}

func TestMath(t *testing.T) {
	config := core.DefaultConfig()
	config.Preludes = []string{"math"}

	ctx := core.NewContext(config)
	require.NoError(t, Initialize(&ctx))

	tests := []struct {
		input    string
		expected core.Value
	}{
		{"max(3, 7)", core.IntValue(7)},
		{"min(3, 7)", core.IntValue(3)},
		{"abs(0 - 5)", core.IntValue(5)},
		{"abs(5)", core.IntValue(5)},
		{"square(9)", core.IntValue(81)},
		{"clamp(15, 0, 10)", core.IntValue(10)},
		{"clamp(0 - 3, 0, 10)", core.IntValue(0)},
		{"clamp(4, 0, 10)", core.IntValue(4)},
		{"sign(12)", core.IntValue(1)},
		{"sign(0 - 12)", core.IntValue(-1)},
		{"sign(0)", core.IntValue(0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			results, err := core.Run(&ctx, tt.input)
			require.NoError(t, err)
			require.Equal(t, []core.Value{tt.expected}, results)
		})
	}
}

func TestMathTypeErrors(t *testing.T) {
	config := core.DefaultConfig()
	config.Preludes = []string{"math"}

	ctx := core.NewContext(config)
	require.NoError(t, Initialize(&ctx))

	_, err := core.Run(&ctx, `square("x")`)
	require.Error(t, err)
	assert.Equal(t, core.TypeErrorKind, core.KindOf(err))
}

func TestMathNotImportedByDefault(t *testing.T) {
	ctx := core.NewContext(core.DefaultConfig())
	require.NoError(t, Initialize(&ctx))

	_, err := core.Run(&ctx, "max(1, 2)")
	require.Error(t, err)
	assert.Equal(t, core.NameErrorKind, core.KindOf(err))
}

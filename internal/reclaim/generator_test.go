package reclaim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

func TestGenerateDeterministic(t *testing.T) {
	p := reclaim.GenParams{Rows: 15, Cols: 25, Density: 0.3, Seed: 12345}

	a, err := reclaim.Generate(p)
	require.NoError(t, err)
	b, err := reclaim.Generate(p)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	p.Seed++
	c, err := reclaim.Generate(p)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestGenerateDensityExtremes(t *testing.T) {
	open, err := reclaim.Generate(reclaim.GenParams{Rows: 5, Cols: 6, Density: 0})
	require.NoError(t, err)
	assert.Equal(t, 30, open.Count(reclaim.Wasteland))

	solid, err := reclaim.Generate(reclaim.GenParams{Rows: 5, Cols: 6, Density: 1})
	require.NoError(t, err)
	assert.Equal(t, 30, solid.Count(reclaim.Debris))
}

func TestGenerateRejectsBadParams(t *testing.T) {
	_, err := reclaim.Generate(reclaim.GenParams{Rows: 0, Cols: 5})
	assert.ErrorIs(t, err, reclaim.ErrInvalidDimension)

	_, err = reclaim.Generate(reclaim.GenParams{Rows: 5, Cols: 5, Density: 1.5})
	assert.Error(t, err)
}

func TestRNGIntn(t *testing.T) {
	rng := reclaim.NewRNG(9)
	for i := 0; i < 1000; i++ {
		v := rng.Intn(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}
	assert.Equal(t, 0, rng.Intn(0))
}

func TestRenderGain(t *testing.T) {
	g := mustGrid(t, "...", ".#.", "...")
	out := reclaim.RenderGain(g, reclaim.Analyze(g))
	want := "...   +.+\n" +
		".#.   .5.\n" +
		"...   +.+\n"
	assert.Equal(t, want, out)
}

func TestExplain(t *testing.T) {
	g := mustGrid(t, "###")
	out := reclaim.Explain(g, reclaim.Analyze(g))
	assert.Contains(t, out, "none helps")
	assert.Contains(t, out, "Result:    0")

	g = mustGrid(t, ".#.")
	out = reclaim.Explain(g, reclaim.Analyze(g))
	assert.Contains(t, out, "(1,2) gains 3")
}

func TestGainRune(t *testing.T) {
	assert.Equal(t, '5', reclaim.GainRune(5))
	assert.Equal(t, 'a', reclaim.GainRune(10))
	assert.Equal(t, 'z', reclaim.GainRune(35))
	assert.Equal(t, '*', reclaim.GainRune(36))
}

package cli

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chesscoach/pkg/engine"
)

func plainColor(t *testing.T) {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })
}

func TestRenderBoardStartPosition(t *testing.T) {
	plainColor(t)

	out := RenderBoard(engine.NewGame(), false)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 10) // leading blank, 8 ranks, file labels

	assert.True(t, strings.HasPrefix(lines[1], "8"))
	assert.True(t, strings.HasPrefix(lines[8], "1"))
	assert.Contains(t, lines[9], "a b c d e f g h")

	assert.Contains(t, out, "♔") // white king
	assert.Contains(t, out, "♚") // black king
	assert.Equal(t, 32, strings.Count(out, "·"))
}

func TestRenderBoardFlipped(t *testing.T) {
	plainColor(t)

	out := RenderBoard(engine.NewGame(), true)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.HasPrefix(lines[1], "1"))
	assert.True(t, strings.HasPrefix(lines[8], "8"))
	assert.Contains(t, lines[9], "h g f e d c b a")
}

func TestRenderBoardCheckHighlightPlain(t *testing.T) {
	plainColor(t)

	g := engine.NewGame()
	for _, m := range []string{"e4", "f6", "d4", "g5", "Qh5#"} {
		_, err := g.MakeMove(m)
		require.NoError(t, err)
	}
	require.True(t, g.InCheck())

	out := RenderBoard(g, false)
	assert.Contains(t, out, "♚")
}

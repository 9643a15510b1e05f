package game

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

func newTestGame(t *testing.T, shapes ...mino.Shape) *Game {
	t.Helper()

	g, err := NewGame(DefaultConfig(), &mino.Sequence{Shapes: shapes})
	require.NoError(t, err)
	return g
}

func pieceMino(t *testing.T, g *Game) string {
	t.Helper()

	require.NotNil(t, g.Piece(), "expected an active piece")
	return g.Piece().Mino().String()
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)

	assert.Equal(t, StatePlaying, g.State())
	assert.True(t, g.Running())
	assert.Equal(t, 0, g.Score())
	assert.Nil(t, g.Piece())
	assert.Equal(t, mino.DefaultWidth, g.Board().W)
	assert.Equal(t, mino.DefaultHeight, g.Board().H)

	for y := 0; y < g.Board().H; y++ {
		assert.True(t, g.Board().LineEmpty(y), "row %d not empty", y)
	}
}

func TestNewGameInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"narrow", func(c *Config) { c.Width = 2 }},
		{"short", func(c *Config) { c.Height = 0 }},
		{"no gravity", func(c *Config) { c.FallTime = 0 }},
		{"no frames", func(c *Config) { c.FrameRate = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := NewGame(cfg, mino.NewRandomizer(1))
			assert.Error(t, err)
		})
	}

	_, err := NewGame(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestSpawnCentered(t *testing.T) {
	tests := []struct {
		shape mino.Shape
		mino  string
	}{
		{mino.ShapeI, "(3,0),(4,0),(5,0),(6,0)"},
		{mino.ShapeO, "(4,0),(5,0),(4,1),(5,1)"},
		{mino.ShapeT, "(4,0),(5,0),(6,0),(5,1)"},
		{mino.ShapeS, "(5,0),(6,0),(4,1),(5,1)"},
	}

	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			g := newTestGame(t, tt.shape)

			assert.True(t, g.Step(time.Unix(0, 0), event.ActionUnknown, false))
			assert.Equal(t, tt.mino, pieceMino(t, g))
			assert.Equal(t, tt.shape, g.Piece().Shape)
		})
	}
}

func TestGravity(t *testing.T) {
	g := newTestGame(t, mino.ShapeO)
	start := time.Unix(100, 0)

	g.Step(start, event.ActionUnknown, false)
	assert.Equal(t, "(4,0),(5,0),(4,1),(5,1)", pieceMino(t, g))

	g.Step(start.Add(599*time.Millisecond), event.ActionUnknown, false)
	assert.Equal(t, "(4,0),(5,0),(4,1),(5,1)", pieceMino(t, g), "fell before the fall time elapsed")

	g.Step(start.Add(600*time.Millisecond), event.ActionUnknown, false)
	assert.Equal(t, "(4,1),(5,1),(4,2),(5,2)", pieceMino(t, g))

	// The timer restarts from the last fall, not from the spawn.
	g.Step(start.Add(1000*time.Millisecond), event.ActionUnknown, false)
	assert.Equal(t, "(4,1),(5,1),(4,2),(5,2)", pieceMino(t, g))

	g.Step(start.Add(1200*time.Millisecond), event.ActionUnknown, false)
	assert.Equal(t, "(4,2),(5,2),(4,3),(5,3)", pieceMino(t, g))

	assert.Equal(t, 0, g.Score(), "gravity must not score")
}

func TestMoveAndRotate(t *testing.T) {
	g := newTestGame(t, mino.ShapeT)
	now := time.Unix(0, 0)

	g.Step(now, event.ActionSoftDrop, true)
	assert.Equal(t, "(4,1),(5,1),(6,1),(5,2)", pieceMino(t, g))

	g.Step(now, event.ActionRotateCCW, true)
	assert.Equal(t, "(5,0),(4,1),(5,1),(5,2)", pieceMino(t, g))

	g.Step(now, event.ActionMoveLeft, true)
	assert.Equal(t, "(4,0),(3,1),(4,1),(4,2)", pieceMino(t, g))

	g.Step(now, event.ActionMoveRight, true)
	g.Step(now, event.ActionMoveRight, true)
	assert.Equal(t, "(6,0),(5,1),(6,1),(6,2)", pieceMino(t, g))

	g.Step(now, event.ActionUnknown, true)
	assert.Equal(t, "(6,0),(5,1),(6,1),(6,2)", pieceMino(t, g))

	assert.Equal(t, 1, g.Score())
}

func TestMoveAgainstWall(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	now := time.Unix(0, 0)

	for i := 0; i < 10; i++ {
		g.Step(now, event.ActionMoveLeft, true)
	}
	assert.Equal(t, "(0,0),(1,0),(2,0),(3,0)", pieceMino(t, g))

	for i := 0; i < 10; i++ {
		g.Step(now, event.ActionMoveRight, true)
	}
	assert.Equal(t, "(6,0),(7,0),(8,0),(9,0)", pieceMino(t, g))
}

func TestSoftDropScore(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	now := time.Unix(0, 0)

	for i := 0; i < 5; i++ {
		g.Step(now, event.ActionSoftDrop, true)
	}
	assert.Equal(t, 5, g.Score())
	assert.Equal(t, "(3,5),(4,5),(5,5),(6,5)", pieceMino(t, g))
}

func TestSoftDropScoresWhenBlocked(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	for x := 3; x <= 6; x++ {
		g.Board().SetBlock(x, 1, mino.BlockSolidRed)
	}

	running := g.Step(time.Unix(0, 0), event.ActionSoftDrop, true)

	assert.Equal(t, 1, g.Score())
	assert.False(t, running)
	assert.True(t, g.GameOver(), "piece locked over the centre column")

	// The empty rows below pull both rows down by one in the same tick.
	assert.Equal(t, mino.BlockSolidCyan, g.Board().Block(4, 1))
	assert.Equal(t, mino.BlockSolidRed, g.Board().Block(4, 2))
}

func TestDropIPieceClearsLine(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	now := time.Unix(0, 0)

	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		g.Board().SetBlock(x, 19, mino.BlockSolidGreen)
	}

	for i := 0; i < 18; i++ {
		require.True(t, g.Step(now, event.ActionSoftDrop, true))
	}
	assert.Equal(t, "(3,18),(4,18),(5,18),(6,18)", pieceMino(t, g))

	require.True(t, g.Step(now, event.ActionSoftDrop, true))

	assert.Nil(t, g.Piece(), "piece did not lock on the floor")
	assert.Equal(t, 19+LineScore, g.Score())
	for y := 0; y < g.Board().H; y++ {
		assert.True(t, g.Board().LineEmpty(y), "row %d not empty after clear", y)
	}

	g.Step(now, event.ActionUnknown, false)
	assert.Equal(t, "(3,0),(4,0),(5,0),(6,0)", pieceMino(t, g), "next piece did not spawn")
}

func TestLockOnStack(t *testing.T) {
	g := newTestGame(t, mino.ShapeO, mino.ShapeI)
	now := time.Unix(0, 0)
	g.Board().SetBlock(4, 19, mino.BlockSolidBlue)

	for g.Piece() == nil || g.Piece().Shape == mino.ShapeO {
		require.True(t, g.Step(now, event.ActionSoftDrop, true))
	}

	assert.Equal(t, mino.BlockSolidYellow, g.Board().Block(4, 18))
	assert.Equal(t, mino.BlockSolidYellow, g.Board().Block(5, 17))
	assert.Equal(t, mino.BlockNone, g.Board().Block(5, 19))
	assert.Equal(t, mino.ShapeI, g.Piece().Shape)
}

func TestFloatingRowsFall(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	g.Board().SetBlock(0, 10, mino.BlockSolidBlue)

	g.Step(time.Unix(0, 0), event.ActionUnknown, false)
	assert.False(t, g.Board().Occupied(0, 10))
	assert.True(t, g.Board().Occupied(0, 11))

	for i := 0; i < 20; i++ {
		g.Step(time.Unix(0, 0), event.ActionUnknown, false)
	}
	assert.True(t, g.Board().Occupied(0, 19), "row did not settle on the floor")
}

func TestStackToTop(t *testing.T) {
	g := newTestGame(t, mino.ShapeO)
	now := time.Unix(0, 0)

	steps := 0
	for g.Step(now, event.ActionSoftDrop, true) {
		steps++
		require.Less(t, steps, 1000, "game never ended")
	}

	assert.True(t, g.GameOver())
	assert.Equal(t, StateGameOver, g.State())
	assert.False(t, g.Running())
	assert.True(t, g.Board().Occupied(4, 0))
	for y := 0; y < g.Board().H; y++ {
		assert.Equal(t, mino.BlockSolidYellow, g.Board().Block(4, y), "column 4 row %d", y)
		assert.Equal(t, mino.BlockNone, g.Board().Block(0, y), "column 0 row %d", y)
	}
}

func TestSpawnBlocked(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	g.Board().SetBlock(6, 0, mino.BlockSolidRed)

	assert.False(t, g.Step(time.Unix(0, 0), event.ActionUnknown, false))
	assert.True(t, g.GameOver())
	assert.Nil(t, g.Piece())
}

func TestGameOverIsFinal(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)
	g.Board().SetBlock(6, 0, mino.BlockSolidRed)
	now := time.Unix(0, 0)

	require.False(t, g.Step(now, event.ActionUnknown, false))
	before := g.Board().Render()

	for _, a := range []event.GameAction{event.ActionSoftDrop, event.ActionMoveLeft, event.ActionRotateCCW} {
		assert.False(t, g.Step(now.Add(time.Hour), a, true))
	}

	assert.Equal(t, StateGameOver, g.State())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, before, g.Board().Render())
}

func TestQuit(t *testing.T) {
	g := newTestGame(t, mino.ShapeT)

	assert.False(t, g.Step(time.Unix(0, 0), event.ActionQuit, true))
	assert.True(t, g.Quit())
	assert.False(t, g.Running())
	assert.Equal(t, StatePlaying, g.State())
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, mino.ShapeZ)
	g.Step(time.Unix(0, 0), event.ActionSoftDrop, true)

	b, p, score, over := g.Snapshot()
	require.NotNil(t, p)
	assert.Equal(t, 1, score)
	assert.False(t, over)

	b.SetBlock(0, 0, mino.BlockSolidRed)
	p.Blocks[0] = mino.Point{X: 0, Y: 0}
	assert.False(t, g.Board().Occupied(0, 0), "snapshot board aliases the game board")
	assert.NotEqual(t, mino.Point{X: 0, Y: 0}, g.Piece().Blocks[0], "snapshot piece aliases the active piece")
}

func TestLogLevels(t *testing.T) {
	g := newTestGame(t, mino.ShapeI)

	g.Log(LogStandard, "dropped")

	var buf bytes.Buffer
	g.Logger = log.New(&buf, "", 0)
	g.LogLevel = LogDebug

	g.Log(LogStandard, "standard")
	g.Logf(LogDebug, "debug %d", 1)
	g.Logf(LogVerbose, "verbose %d", 2)

	assert.Contains(t, buf.String(), "standard")
	assert.Contains(t, buf.String(), "debug 1")
	assert.NotContains(t, buf.String(), "verbose")
}

func BenchmarkStep(b *testing.B) {
	g, err := NewGame(DefaultConfig(), mino.NewRandomizer(1))
	if err != nil {
		b.Fatal(err)
	}
	now := time.Unix(0, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		now = now.Add(time.Second / DefaultFrameRate)
		if !g.Step(now, event.ActionUnknown, false) {
			g, _ = NewGame(DefaultConfig(), mino.NewRandomizer(int64(i+1)))
		}
	}
}

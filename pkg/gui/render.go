package gui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/mino"
)

const (
	// Each board cell is two terminal columns wide so it looks square.
	cellWidth = 2

	renderEmpty = "·"
	renderSolid = "█"
)

var (
	renderHLine    = string(tcell.RuneHLine)
	renderVLine    = string(tcell.RuneVLine)
	renderULCorner = string(tcell.RuneULCorner)
	renderURCorner = string(tcell.RuneURCorner)
	renderLLCorner = string(tcell.RuneLLCorner)
	renderLRCorner = string(tcell.RuneLRCorner)
)

// Render draws a frame. It implements game.Renderer.
func (g *GUI) Render(b *mino.Board, p *mino.Piece, score int, gameOver bool) error {
	if g.isClosed() {
		return ErrClosed
	}

	text := g.renderFrame(b, p, score, gameOver)

	g.app.QueueUpdateDraw(func() {
		g.mtx.SetText(text)
	})

	return nil
}

func (g *GUI) renderFrame(b *mino.Board, p *mino.Piece, score int, gameOver bool) string {
	g.renderLock.Lock()
	defer g.renderLock.Unlock()

	g.renderBuffer.Reset()
	if b == nil {
		return ""
	}

	g.writeTag(g.tags.Border)
	g.renderBuffer.WriteString(renderULCorner)
	for x := 0; x < b.W*cellWidth; x++ {
		g.renderBuffer.WriteString(renderHLine)
	}
	g.renderBuffer.WriteString(renderURCorner)
	g.renderBuffer.WriteRune('\n')

	for y := 0; y < b.H; y++ {
		g.writeTag(g.tags.Border)
		g.renderBuffer.WriteString(renderVLine)

		for x := 0; x < b.W; x++ {
			block := b.Block(x, y)
			if p != nil && p.HasPoint(mino.Point{X: x, Y: y}) {
				block = p.Solid
			}

			g.writeTag(g.tags.Block(block))
			if block == mino.BlockNone {
				g.renderBuffer.WriteString(renderEmpty)
				g.renderBuffer.WriteRune(' ')
			} else {
				g.renderBuffer.WriteString(renderSolid)
				g.renderBuffer.WriteString(renderSolid)
			}
		}

		g.writeTag(g.tags.Border)
		g.renderBuffer.WriteString(renderVLine)
		g.renderBuffer.WriteRune('\n')
	}

	g.writeTag(g.tags.Border)
	g.renderBuffer.WriteString(renderLLCorner)
	for x := 0; x < b.W*cellWidth; x++ {
		g.renderBuffer.WriteString(renderHLine)
	}
	g.renderBuffer.WriteString(renderLRCorner)
	g.renderBuffer.WriteRune('\n')

	g.renderBuffer.WriteString(" [")
	g.renderBuffer.WriteString(g.tags.Score)
	g.renderBuffer.WriteString("::b]Score: ")
	g.renderBuffer.WriteString(strconv.Itoa(score))
	g.renderBuffer.WriteString("[-::-]")

	if gameOver {
		g.renderBuffer.WriteString("\n ")
		g.writeTag(g.tags.GameOver)
		g.renderBuffer.WriteString("GAME OVER")
		g.renderBuffer.WriteString("[-]")
	}

	return g.renderBuffer.String()
}

func (g *GUI) writeTag(color string) {
	g.renderBuffer.WriteRune('[')
	g.renderBuffer.WriteString(color)
	g.renderBuffer.WriteRune(']')
}

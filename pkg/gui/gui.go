package gui

import (
	"bytes"
	"errors"
	"sync"

	"github.com/rivo/tview"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
)

var ErrClosed = errors.New("gui closed")

// GUI is a terminal front end. Key presses are queued for the tick loop to
// poll and frames are drawn on the tview event loop, so the game itself is
// never touched from the UI goroutine.
type GUI struct {
	app *tview.Application
	mtx *tview.TextView

	input       game.ActionQueue
	keybindings []*Keybinding
	tags        ThemeHex

	renderLock   sync.Mutex
	renderBuffer bytes.Buffer

	closeLock sync.Mutex
	closed    bool
}

func New(theme Theme) *GUI {
	g := &GUI{
		app:         tview.NewApplication(),
		input:       game.NewActionQueue(),
		keybindings: DefaultKeybindings(),
		tags:        theme.Hex(),
	}

	g.mtx = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)

	g.mtx.SetDynamicColors(true)

	g.app.SetInputCapture(g.handleKeypress)
	g.app.SetRoot(g.mtx, true)

	return g
}

// Run blocks until the application stops.
func (g *GUI) Run() error {
	return g.app.Run()
}

// Poll returns the oldest pending key press, if any.
func (g *GUI) Poll() (event.GameAction, bool) {
	return g.input.Poll()
}

func (g *GUI) Close() {
	g.closeLock.Lock()
	defer g.closeLock.Unlock()

	if g.closed {
		return
	}
	g.closed = true

	g.app.Stop()
}

func (g *GUI) isClosed() bool {
	g.closeLock.Lock()
	defer g.closeLock.Unlock()

	return g.closed
}

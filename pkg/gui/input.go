package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

func DefaultKeybindings() []*Keybinding {
	return []*Keybinding{
		{r: 'z', a: event.ActionRotateCCW},
		{r: 'Z', a: event.ActionRotateCCW},
		{k: tcell.KeyUp, a: event.ActionRotateCCW},
		{k: tcell.KeyLeft, a: event.ActionMoveLeft},
		{r: 'h', a: event.ActionMoveLeft},
		{r: 'H', a: event.ActionMoveLeft},
		{k: tcell.KeyDown, a: event.ActionSoftDrop},
		{r: 'j', a: event.ActionSoftDrop},
		{r: 'J', a: event.ActionSoftDrop},
		{k: tcell.KeyRight, a: event.ActionMoveRight},
		{r: 'l', a: event.ActionMoveRight},
		{r: 'L', a: event.ActionMoveRight},
		{r: 'q', a: event.ActionQuit},
		{r: 'Q', a: event.ActionQuit},
		{k: tcell.KeyEscape, a: event.ActionQuit},
		{k: tcell.KeyCtrlC, a: event.ActionQuit},
	}
}

func (b *Keybinding) matches(ev *tcell.EventKey) bool {
	if b.k != 0 {
		if b.k != ev.Key() {
			return false
		}
	} else if ev.Key() != tcell.KeyRune || b.r != ev.Rune() {
		return false
	}

	return b.m == 0 || b.m == ev.Modifiers()
}

func (g *GUI) action(ev *tcell.EventKey) (event.GameAction, bool) {
	for _, bind := range g.keybindings {
		if bind.matches(ev) {
			return bind.a, true
		}
	}

	return event.ActionUnknown, false
}

// handleKeypress swallows every key so tview never acts on one itself.
// Ctrl-C in particular must reach the game as a quit.
func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	a, ok := g.action(ev)
	if !ok {
		return nil
	}

	g.input.Push(a)
	return nil
}

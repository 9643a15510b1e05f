package game

import (
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

// InputSource yields at most one pending action per call. Poll must never
// block: when no key is waiting it returns false.
type InputSource interface {
	Poll() (event.GameAction, bool)
}

// Renderer displays a frame. The board and piece are copies owned by the
// renderer; piece is nil when nothing is falling. A returned error is fatal.
type Renderer interface {
	Render(b *mino.Board, p *mino.Piece, score int, gameOver bool) error
}

// Renderers hands every frame to each renderer in order, stopping at the
// first error.
type Renderers []Renderer

func (rs Renderers) Render(b *mino.Board, p *mino.Piece, score int, gameOver bool) error {
	for _, r := range rs {
		if r == nil {
			continue
		}

		err := r.Render(b, p, score, gameOver)
		if err != nil {
			return err
		}
	}

	return nil
}

// ActionQueue is an InputSource fed from a channel, used by front ends that
// receive keys on another goroutine.
type ActionQueue chan event.GameAction

func NewActionQueue() ActionQueue {
	return make(ActionQueue, CommandQueueSize)
}

// Push queues a, dropping it when the queue is full.
func (q ActionQueue) Push(a event.GameAction) bool {
	select {
	case q <- a:
		return true
	default:
		return false
	}
}

func (q ActionQueue) Poll() (event.GameAction, bool) {
	select {
	case a := <-q:
		return a, true
	default:
		return event.ActionUnknown, false
	}
}

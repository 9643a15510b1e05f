package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qnkhuat/blockterm/pkg/event"
)

// Loop drives a Game at a fixed frame rate. Gravity runs on its own timer
// inside the game, so the frame rate only bounds input latency.
type Loop struct {
	Game     *Game
	Input    InputSource
	Renderer Renderer
	Clock    Clock

	// FrameRate overrides the game's configured rate when positive.
	FrameRate int

	frames int
}

// Run ticks until the player quits, the game ends, rendering fails or ctx is
// done. A finished game is not an error.
func (l *Loop) Run(ctx context.Context) error {
	if l.Game == nil {
		return errors.New("failed to start loop: no game")
	}

	clock := l.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	rate := l.FrameRate
	if rate <= 0 {
		rate = l.Game.FrameRate
	}
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	frame := time.Second / time.Duration(rate)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := clock.Now()

		var (
			a  event.GameAction
			ok bool
		)
		if l.Input != nil {
			a, ok = l.Input.Poll()
		}

		l.Game.Step(start, a, ok)

		if l.Renderer != nil {
			err := l.Renderer.Render(l.Game.Snapshot())
			if err != nil {
				return fmt.Errorf("failed to render frame %d: %w", l.frames, err)
			}
		}
		l.frames++

		if !l.Game.Running() {
			l.Game.Logf(LogDebug, "loop stopped after %d frames (%s)", l.frames, l.Game.State())
			return nil
		}

		if d := frame - clock.Now().Sub(start); d > 0 {
			clock.Sleep(d)
		}
	}
}

// Frames returns how many frames have been rendered.
func (l *Loop) Frames() int {
	return l.frames
}

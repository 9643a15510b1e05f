package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const SampleRate = beep.SampleRate(44100)

type Cue int

const (
	CueLineClear Cue = iota
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueLineClear:
		return "LineClear"
	case CueGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CueLineClear: {{660, 70 * time.Millisecond}, {880, 110 * time.Millisecond}},
	CueGameOver:  {{392, 150 * time.Millisecond}, {262, 150 * time.Millisecond}, {196, 400 * time.Millisecond}},
}

// Player plays a short tone when a frame shows a cleared line or the end of
// the game. It is a game.Renderer so it can sit next to the screen.
type Player struct {
	Volume float64

	play func(...beep.Streamer)

	lastScore int
	over      bool
}

func NewPlayer() *Player {
	return &Player{Volume: -1, play: speaker.Play}
}

// Init opens the audio device.
func (p *Player) Init() error {
	err := speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	if err != nil {
		return fmt.Errorf("failed to initialize speaker: %s", err)
	}

	return nil
}

func (p *Player) Close() {
	speaker.Close()
}

func (p *Player) Render(b *mino.Board, piece *mino.Piece, score int, gameOver bool) error {
	defer func() {
		p.lastScore = score
	}()

	if gameOver {
		if p.over {
			return nil
		}
		p.over = true

		return p.Play(CueGameOver)
	}

	if score-p.lastScore >= game.LineScore {
		return p.Play(CueLineClear)
	}

	return nil
}

func (p *Player) Play(c Cue) error {
	s, err := Tone(c, p.Volume)
	if err != nil {
		return err
	}

	p.play(s)
	return nil
}

// Tone builds the streamer for c. Volume is in halvings, 0 being full scale.
func Tone(c Cue, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("failed to build tone: unknown cue %d", c)
	}

	seq := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s tone: %s", c, err)
		}

		seq = append(seq, beep.Take(SampleRate.N(n.dur), sine))
	}

	return &effects.Volume{
		Streamer: beep.Seq(seq...),
		Base:     2,
		Volume:   volume,
		Silent:   math.IsInf(volume, -1),
	}, nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/mino"
	"github.com/qnkhuat/blockterm/pkg/sound"
)

var (
	ui *gui.GUI

	logPath    string
	logDebug   bool
	logVerbose bool

	seed      int64
	frameRate int
	fallTime  time.Duration
	themeName string
	playSound bool
)

// GameOverWait is how long the final frame stays up when no key is pressed.
const GameOverWait = 10 * time.Second

func closeGUI() {
	if ui == nil {
		return
	}

	ui.Close()
}

// drainInput discards actions queued while the game was still running.
func drainInput(in game.InputSource) int {
	n := 0
	for {
		if _, ok := in.Poll(); !ok {
			return n
		}
		n++
	}
}

// waitForKey returns once a bound key is pressed, ctx is done or d passes.
// Keys already queued do not count.
func waitForKey(ctx context.Context, in game.InputSource, d time.Duration) {
	drainInput(in)

	deadline := time.After(d)

	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-t.C:
			if _, ok := in.Poll(); ok {
				return
			}
		}
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			closeGUI()

			time.Sleep(time.Second)

			log.SetOutput(os.Stderr)
			log.Println()
			debug.PrintStack()
			log.Println()
			log.Fatalf("panic: %+v", r)
		}
	}()

	defaults := game.DefaultConfig()

	flag.StringVar(&logPath, "log", "./log", "path to log file")
	flag.BoolVar(&logDebug, "debug", false, "enable debug logging")
	flag.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
	flag.Int64Var(&seed, "seed", 0, "random seed for the piece sequence (0 picks one)")
	flag.IntVar(&frameRate, "fps", defaults.FrameRate, "frames per second")
	flag.DurationVar(&fallTime, "fall", defaults.FallTime, "time between gravity steps")
	flag.StringVar(&themeName, "theme", gui.ThemeClassic.Name, "color theme (classic or mono)")
	flag.BoolVar(&playSound, "sound", false, "play sound effects")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("failed to start blockterm: non-interactive terminals are not supported")
	}

	logFile, err := game.InitLog(logPath, "BLOCKTERM: ")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()

	logLevel := game.LogStandard
	if logVerbose {
		logLevel = game.LogVerbose
	} else if logDebug {
		logLevel = game.LogDebug
	}

	theme, err := gui.ImportThemes(themeName, gui.Themes)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to start blockterm: %s", err)
	}

	cfg := defaults
	cfg.FrameRate = frameRate
	cfg.FallTime = fallTime

	shapes := mino.NewRandomizer(seed)

	g, err := game.NewGame(cfg, shapes)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	g.Logger = log.Default()
	g.LogLevel = logLevel

	g.Logf(game.LogStandard, "starting %dx%d game with seed %d", cfg.Width, cfg.Height, shapes.Seed)

	ui = gui.New(theme)

	renderers := game.Renderers{ui}
	if playSound {
		p := sound.NewPlayer()
		if err := p.Init(); err != nil {
			g.Logf(game.LogStandard, "sound disabled: %s", err)
		} else {
			defer p.Close()
			renderers = append(renderers, p)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uiDone := make(chan error, 1)
	go func() {
		err := ui.Run()
		ui.Close()
		cancel()

		uiDone <- err
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		cancel()
	}()

	loop := &game.Loop{Game: g, Input: ui, Renderer: renderers}
	err = loop.Run(ctx)

	if err == nil && g.GameOver() {
		waitForKey(ctx, ui, GameOverWait)
	}

	closeGUI()
	uiErr := <-uiDone

	g.Logf(game.LogStandard, "exited after %d frames with score %d", loop.Frames(), g.Score())

	log.SetOutput(io.MultiWriter(logFile, os.Stderr))

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("failed to run game: %s", err)
	}
	if uiErr != nil {
		log.Fatalf("failed to run application: %s", uiErr)
	}

	if g.GameOver() {
		fmt.Printf("Game over. Score: %d\n", g.Score())
	}
}

package game

import (
	"fmt"
	"log"
	"os"
)

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

const CommandQueueSize = 10

// InitLog sends the standard logger to dest, since the terminal belongs to
// the game while it runs.
func InitLog(dest, prefix string) (*os.File, error) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %s", dest, err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)

	return f, nil
}

func (g *Game) Log(level int, a ...interface{}) {
	if g.Logger == nil || level > g.LogLevel {
		return
	}

	g.Logger.Print(fmt.Sprint(a...))
}

func (g *Game) Logf(level int, format string, a ...interface{}) {
	if g.Logger == nil || level > g.LogLevel {
		return
	}

	g.Logger.Printf(format, a...)
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/qnkhuat/blockterm/pkg/server"
)

var (
	listenAddressSSH string
	blocktermBinary  string
	blocktermArgs    string
	hostKey          string
	idleTimeout      time.Duration
	sessionLogDir    string

	done = make(chan bool, 2)
)

const (
	LogTimeFormat = "2006-01-02 15:04:05"

	ShutdownTimeout = 10 * time.Second
)

var (
	started = color.New(color.FgGreen).SprintFunc()
	ended   = color.New(color.FgYellow).SprintFunc()
	failed  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func init() {
	log.SetFlags(0)

	flag.StringVar(&listenAddressSSH, "listen-ssh", server.DefaultListenAddress, "host SSH server on network address")
	flag.StringVar(&blocktermBinary, "binary", "", "path to blockterm")
	flag.StringVar(&blocktermArgs, "args", "", "extra arguments passed to blockterm")
	flag.StringVar(&hostKey, "host-key", "", "path to SSH host key (default ~/.ssh/id_rsa)")
	flag.DurationVar(&idleTimeout, "idle", server.DefaultIdleTimeout, "disconnect idle sessions after")
	flag.StringVar(&sessionLogDir, "log-dir", "", "write one game log per session into directory")
}

func colorize(msg string) string {
	switch {
	case strings.Contains(msg, "failed"):
		return failed(msg)
	case strings.Contains(msg, " started "):
		return started(msg)
	case strings.Contains(msg, " ended "):
		return ended(msg)
	default:
		return msg
	}
}

func main() {
	flag.Parse()

	if blocktermBinary == "" {
		log.Fatal("failed to start server: path to blockterm is required (--binary)")
	}

	binary, err := filepath.Abs(blocktermBinary)
	if err != nil {
		log.Fatalf("failed to resolve %s: %s", blocktermBinary, err)
	}

	args, err := server.ParseArgs(blocktermArgs)
	if err != nil {
		log.Fatalf("failed to start server: %s", err)
	}

	s, err := server.NewServer(server.Config{
		ListenAddress: listenAddressSSH,
		Binary:        binary,
		Args:          args,
		HostKey:       hostKey,
		IdleTimeout:   idleTimeout,
		LogDir:        sessionLogDir,
	})
	if err != nil {
		log.Fatal(err)
	}

	logger := make(chan string, server.LogQueueSize)
	go func() {
		for msg := range logger {
			log.Println(time.Now().Format(LogTimeFormat) + " " + colorize(msg))
		}
	}()

	s.Logger = logger

	go func() {
		err := s.ListenAndServe()
		if err != nil && !errors.Is(err, server.ErrServerClosed) {
			s.Logf("failed to serve: %s", err)
		}

		done <- true
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc

		done <- true
	}()

	<-done

	s.Logf("shutting down with %d active sessions", len(s.Sessions()))

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		s.Close()
	}

	// Let the logger drain.
	time.Sleep(100 * time.Millisecond)
}

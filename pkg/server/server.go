package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
)

const (
	DefaultListenAddress = ":2222"
	DefaultIdleTimeout   = 1 * time.Minute

	LogQueueSize = 100

	SessionEnv = "BLOCKTERM_SESSION"
)

var ErrServerClosed = ssh.ErrServerClosed

type Config struct {
	ListenAddress string
	Binary        string
	Args          []string
	HostKey       string
	IdleTimeout   time.Duration

	// LogDir, when set, gives every session its own game log.
	LogDir string
}

// Session is one connected player running their own game process.
type Session struct {
	ID      string
	Name    string
	User    string
	Remote  string
	Started time.Time
}

func NewSession(user, remote string) *Session {
	return &Session{
		ID:      uuid.New().String(),
		Name:    petname.Generate(2, "-"),
		User:    user,
		Remote:  remote,
		Started: time.Now(),
	}
}

// Server hosts blockterm over SSH. Each session gets a pseudo-terminal
// running a fresh copy of the game binary.
type Server struct {
	Config

	Logger chan string

	server   *ssh.Server
	sessions map[string]*Session

	sync.RWMutex
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Binary == "" {
		return nil, errors.New("failed to create server: game binary must be specified")
	}
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.HostKey == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate host key: %s", err)
		}
		cfg.HostKey = filepath.Join(homeDir, ".ssh", "id_rsa")
	}

	s := &Server{
		Config:   cfg,
		sessions: make(map[string]*Session),
	}

	s.server = &ssh.Server{
		Addr:        cfg.ListenAddress,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	err := s.server.SetOption(ssh.HostKeyFile(cfg.HostKey))
	if err != nil {
		return nil, fmt.Errorf("failed to load host key %s: %s", cfg.HostKey, err)
	}

	return s, nil
}

// ParseArgs splits extra game arguments the way a shell would.
func ParseArgs(args string) ([]string, error) {
	split, err := shlex.Split(args, true)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments %q: %s", args, err)
	}

	return split, nil
}

func (s *Server) ListenAndServe() error {
	s.Logf("listening for SSH connections on %s", s.ListenAddress)

	return s.server.ListenAndServe()
}

func (s *Server) Serve(l net.Listener) error {
	s.Logf("listening for SSH connections on %s", l.Addr())

	return s.server.Serve(l)
}

// Shutdown stops accepting connections and waits for sessions to end or ctx
// to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.server.Close()
}

// Command builds the game process for sess.
func (s *Server) Command(ctx context.Context, sess *Session, term string) *exec.Cmd {
	args := make([]string, 0, len(s.Args)+2)
	args = append(args, s.Args...)
	if s.LogDir != "" {
		args = append(args, "-log", filepath.Join(s.LogDir, sess.Name+".log"))
	}

	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("TERM=%s", term),
		fmt.Sprintf("%s=%s", SessionEnv, sess.ID))

	return cmd
}

func (s *Server) handle(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start blockterm: non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	sess := NewSession(sshSession.User(), sshSession.RemoteAddr().String())
	s.track(sess)
	defer s.untrack(sess)

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, sess, ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		s.Logf("session %s failed to start: %s", sess.Name, err)
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sshSession.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			s.resize(sess, f, win)
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	cmd.Wait()

	code := 0
	if cmd.ProcessState != nil && cmd.ProcessState.ExitCode() > 0 {
		code = cmd.ProcessState.ExitCode()
	}
	sshSession.Exit(code)
}

func (s *Server) resize(sess *Session, f *os.File, win ssh.Window) {
	err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
	if err != nil {
		s.Logf("session %s failed to resize to %dx%d: %s", sess.Name, win.Width, win.Height, err)
	}
}

func (s *Server) track(sess *Session) {
	s.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.Unlock()

	s.Logf("session %s started for %s from %s (%d active)", sess.Name, sess.User, sess.Remote, n)
}

func (s *Server) untrack(sess *Session) {
	s.Lock()
	delete(s.sessions, sess.ID)
	n := len(s.sessions)
	s.Unlock()

	s.Logf("session %s ended after %s (%d active)", sess.Name, time.Since(sess.Started).Round(time.Second), n)
}

// Sessions lists the connected sessions, oldest first.
func (s *Server) Sessions() []Session {
	s.RLock()
	defer s.RUnlock()

	l := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		l = append(l, *sess)
	}
	sort.Slice(l, func(i, j int) bool {
		return l[i].Started.Before(l[j].Started)
	})

	return l
}

func (s *Server) Logf(format string, a ...interface{}) {
	if s.Logger == nil {
		return
	}

	s.Logger <- fmt.Sprintf(format, a...)
}

// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
)

// Server serves sandbox sessions over SSH. A Server instance is single-use:
// once stopped or failed, create a new instance.
type Server struct {
	cfg      Config
	newShell ShellFactory
	logger   *log.Logger

	state atomic.Int32

	// Initialized during Start, guarded by mu.
	mu       sync.Mutex
	srv      *ssh.Server
	listener net.Listener
	addr     string
	lastErr  error

	wg        sync.WaitGroup
	startedCh chan struct{}
	doneCh    chan struct{}
	doneOnce  sync.Once
	errCh     chan error
	sessions  atomic.Int64
}

// New creates a server that builds one shell per connection with
// newShell. A nil logger writes to stderr with the "ssh-server" prefix.
func New(cfg Config, newShell ShellFactory, logger *log.Logger) (*Server, error) {
	defaults := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if cfg.StartupTimeout == 0 {
		cfg.StartupTimeout = defaults.StartupTimeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if newShell == nil {
		return nil, ErrNoShellFactory
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssh-server"})
	}

	s := &Server{
		cfg:       cfg,
		newShell:  newShell,
		logger:    logger,
		startedCh: make(chan struct{}),
		doneCh:    make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	s.state.Store(int32(StateCreated))
	return s, nil
}

// Start listens and blocks until the server accepts connections, fails,
// the context is canceled or the startup timeout passes. After it returns
// nil, use Err to watch for runtime failures.
func (s *Server) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		s.transitionToFailed(fmt.Errorf("context cancelled before start: %w", ctx.Err()))
		return s.LastError()
	default:
	}

	if !s.state.CompareAndSwap(int32(StateCreated), int32(StateStarting)) {
		return fmt.Errorf("cannot start server in state %s", s.State())
	}

	startupCtx, cancel := context.WithTimeout(ctx, s.cfg.StartupTimeout)
	defer cancel()

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var lc net.ListenConfig
	listener, err := lc.Listen(startupCtx, "tcp", addr)
	if err != nil {
		s.transitionToFailed(fmt.Errorf("failed to listen on %s: %w", addr, err))
		return s.LastError()
	}

	srv, err := wish.NewServer(s.options(addr)...)
	if err != nil {
		_ = listener.Close() //nolint:errcheck // Best-effort cleanup on error
		s.transitionToFailed(fmt.Errorf("failed to create SSH server: %w", err))
		return s.LastError()
	}

	s.mu.Lock()
	s.srv = srv
	s.listener = listener
	s.addr = listener.Addr().String()
	s.mu.Unlock()

	s.wg.Add(1)
	go s.serve()

	select {
	case <-s.startedCh:
		s.logger.Info("SSH server started", "address", s.Address(), "auth", s.cfg.Password != "")
		return nil
	case err := <-s.errCh:
		s.transitionToFailed(err)
		return err
	case <-startupCtx.Done():
		s.transitionToFailed(fmt.Errorf("startup timeout: %w", startupCtx.Err()))
		return s.LastError()
	}
}

// options assembles the Wish server options. Middlewares run last to first:
// exec requests are answered before activeterm insists on a PTY.
func (s *Server) options(addr string) []ssh.Option {
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			s.interactiveMiddleware(),
			activeterm.Middleware(),
			s.execMiddleware(),
			s.connectionMiddleware(),
		),
	}
	if s.cfg.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(s.cfg.HostKeyPath))
	}
	if s.cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(s.cfg.IdleTimeout))
	}
	if s.cfg.Password != "" {
		opts = append(opts,
			wish.WithPasswordAuth(s.passwordHandler),
			wish.WithKeyboardInteractiveAuth(s.keyboardInteractiveHandler),
		)
	}
	return opts
}

// Stop gracefully stops the server. It is safe to call more than once.
func (s *Server) Stop() error {
	for {
		current := s.State()
		switch current {
		case StateStopped, StateFailed:
			return nil
		case StateCreated:
			if s.state.CompareAndSwap(int32(StateCreated), int32(StateStopped)) {
				s.markDone()
				return nil
			}
		case StateStopping:
			<-s.doneCh
			return nil
		case StateStarting, StateRunning:
			if s.state.CompareAndSwap(int32(current), int32(StateStopping)) {
				return s.doStop()
			}
		default:
			return fmt.Errorf("unknown server state: %d", current)
		}
	}
}

func (s *Server) doStop() error {
	s.logger.Info("stopping SSH server", "sessions", s.Sessions())
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	s.mu.Lock()
	if s.srv != nil {
		shutdownErr = s.srv.Shutdown(ctx)
		if shutdownErr != nil && !isClosedConnError(shutdownErr) {
			s.logger.Error("shutdown error", "error", shutdownErr)
		} else {
			shutdownErr = nil
		}
	}
	if s.listener != nil {
		_ = s.listener.Close() //nolint:errcheck // Best-effort cleanup during shutdown
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.state.Store(int32(StateStopped))
	s.markDone()
	s.logger.Info("SSH server stopped")
	return shutdownErr
}

// serve runs the accept loop.
func (s *Server) serve() {
	defer s.wg.Done()

	if s.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		close(s.startedCh)
	}

	s.mu.Lock()
	srv, listener := s.srv, s.listener
	s.mu.Unlock()

	err := srv.Serve(listener)
	if err == nil || errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
		return
	}
	select {
	case s.errCh <- fmt.Errorf("serve error: %w", err):
	default:
		s.logger.Error("SSH server error (channel full)", "error", err)
	}
}

// transitionToFailed records err and moves to StateFailed.
func (s *Server) transitionToFailed(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.state.Store(int32(StateFailed))
	s.markDone()
	select {
	case s.errCh <- err:
	default:
	}
}

func (s *Server) markDone() {
	s.doneOnce.Do(func() { close(s.doneCh) })
}

// Err returns a channel that receives fatal runtime errors.
func (s *Server) Err() <-chan error {
	return s.errCh
}

// LastError returns the error that failed the server, if any.
func (s *Server) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// State returns the current server state.
func (s *Server) State() ServerState {
	return ServerState(s.state.Load())
}

// IsRunning reports whether the server accepts connections.
func (s *Server) IsRunning() bool {
	return s.State() == StateRunning
}

// Sessions returns the number of connections currently being served.
func (s *Server) Sessions() int64 {
	return s.sessions.Load()
}

// Address returns the bound host:port, or "" before a successful start.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Port returns the bound port, or 0 before a successful start.
func (s *Server) Port() int {
	_, portStr, err := net.SplitHostPort(s.Address())
	if err != nil {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

// Wait blocks until the server stops and returns the failure, if any.
func (s *Server) Wait() error {
	<-s.doneCh
	if s.State() == StateFailed {
		return s.LastError()
	}
	return nil
}

// isClosedConnError checks for "use of closed network connection".
func isClosedConnError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && errors.Is(opErr.Err, net.ErrClosed)
}

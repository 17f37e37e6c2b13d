// Package sshd serves the terminal client over SSH. Each session gets
// its own client process running under a pseudo-terminal, so remote
// players see the same full screen UI as local ones.
package sshd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"
	"time"
	"unsafe"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
)

const DefaultIdleTimeout = 5 * time.Minute

// Config describes the SSH front end.
type Config struct {
	Addr        string
	HostKeyPath string
	ClientBin   string   // path to the terminal client binary
	ClientArgs  []string // extra arguments passed to every session's client
	IdleTimeout time.Duration
}

// Server wraps the SSH listener.
type Server struct {
	*ssh.Server
	cfg Config
}

func setWinsize(f *os.File, w, h int) {
	syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), uintptr(syscall.TIOCSWINSZ),
		uintptr(unsafe.Pointer(&struct{ h, w, x, y uint16 }{uint16(h), uint16(w), 0, 0})))
}

// handle runs one session: spawn the client under a pty and shuttle
// bytes until either side hangs up.
func (srv *Server) handle(s ssh.Session) {
	ptyReq, winCh, isPty := s.Pty()
	if !isPty {
		io.WriteString(s, "non-interactive terminals are not supported\n")
		s.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(s.Context())
	defer cancelCmd()

	args := append([]string{}, srv.cfg.ClientArgs...)
	// The SSH user names the player profile.
	if user := s.User(); user != "" {
		args = append(args, "-name", user)
	}

	cmd := exec.CommandContext(cmdCtx, srv.cfg.ClientBin, args...)
	cmd.Env = append(s.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		io.WriteString(s, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		s.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			setWinsize(f, win.Width, win.Height)
		}
	}()

	go func() {
		io.Copy(f, s)
	}()
	io.Copy(s, f)

	f.Close()
	if err := cmd.Wait(); err != nil {
		log.Printf("ssh session for %s ended: %v", s.User(), err)
	}
}

// NewServer builds the SSH front end. It does not start listening.
func NewServer(cfg Config) (*Server, error) {
	if cfg.ClientBin == "" {
		return nil, fmt.Errorf("sshd: client binary is required")
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	srv := &Server{cfg: cfg}
	s := &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     srv.handle,
	}
	if cfg.HostKeyPath != "" {
		if err := s.SetOption(ssh.HostKeyFile(cfg.HostKeyPath)); err != nil {
			return nil, fmt.Errorf("sshd: load host key: %w", err)
		}
	}

	srv.Server = s
	return srv, nil
}

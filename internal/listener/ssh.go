package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SshListener accepts anonymous SSH visitors. Each "session" channel that
// asks for a shell becomes one visit.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(l.hostKey)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancelConns()
		wg.Wait()
	}()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("ssh listener closed: %w", err)
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.DebugContext(ctx, "ssh handshake", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr())

	// Unblocks the channel loop below on shutdown.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if !awaitShell(ctx, requests) {
			ch.Close()
			continue
		}

		l.cm.AcceptConnection(ctx, newLineEndings(ch))
		ch.Close()
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// Clients do not forward input before the shell reply. It gives up when the
// client stops sending requests without asking for one.
func awaitShell(ctx context.Context, requests <-chan *ssh.Request) bool {
	ready := make(chan struct{})
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		shell := false
		for req := range requests {
			ok := acceptRequest(req.Type, shell)
			req.Reply(ok, nil)
			if ok {
				shell = true
				close(ready)
			}
		}
	}()

	select {
	case <-ready:
		return true
	case <-closed:
		// A shell accepted just before the stream ended still counts.
		select {
		case <-ready:
			return true
		default:
			return false
		}
	case <-ctx.Done():
		return false
	}
}

// acceptRequest decides the reply to a session channel request. Only the
// first shell is accepted; PTYs are refused so the client keeps local echo
// and line editing.
func acceptRequest(reqType string, shellStarted bool) bool {
	return reqType == "shell" && !shellStarted
}

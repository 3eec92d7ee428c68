// Package cli implements the interactive wallet shell. It is a thin
// consumer of the session manager and availability checker: all state
// authority lives in internal/session.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mkorchagin/passwallet/internal/availability"
	"github.com/mkorchagin/passwallet/internal/config"
	"github.com/mkorchagin/passwallet/internal/session"
)

// App wires the shell to the application services.
type App struct {
	cfg     *config.Config
	session *session.Manager
	checker *availability.Checker
	results chan availability.Result
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the shell. The availability checker is attached afterwards
// with SetChecker, since it is constructed with app.DeliverResult as its
// notify callback (see cmd/wallet).
func NewApp(cfg *config.Config, sess *session.Manager, checker *availability.Checker) *App {
	return &App{
		cfg:     cfg,
		session: sess,
		checker: checker,
		results: make(chan availability.Result, 4),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// SetChecker attaches the availability checker.
func (a *App) SetChecker(c *availability.Checker) {
	a.checker = c
}

// DeliverResult receives applied availability results. It never blocks.
func (a *App) DeliverResult(r availability.Result) {
	select {
	case a.results <- r:
	default:
	}
}

// Run starts the session watcher and the REPL, returning when the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.watchSession(ctx)

	a.session.CheckStatus(ctx)
	runREPL(ctx, a.reader, a, a.out)
}

// watchSession prints session transitions as they are published.
func (a *App) watchSession(ctx context.Context) {
	states, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	for {
		select {
		case st, ok := <-states:
			if !ok {
				return
			}
			if st.Status == session.StatusAuthenticated && st.User != nil {
				fmt.Fprintf(a.out, "\n[session] %s as @%s\n", st.Status, st.User.Tag)
			} else {
				fmt.Fprintf(a.out, "\n[session] %s\n", st.Status)
			}
		case <-ctx.Done():
			return
		}
	}
}

// IsAuthenticated reports the current session status for the prompt.
func (a *App) IsAuthenticated() bool {
	return a.session.Snapshot().Status == session.StatusAuthenticated
}

// Prompt renders the shell prompt, including the tag when logged in.
func (a *App) Prompt() string {
	st := a.session.Snapshot()
	if st.Status == session.StatusAuthenticated && st.User != nil {
		return fmt.Sprintf("wallet (@%s)> ", st.User.Tag)
	}
	return "wallet> "
}

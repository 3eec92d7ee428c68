package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// executor is the command surface the REPL drives. The App implements it;
// tests substitute a fake.
type executor interface {
	IsAuthenticated() bool
	Prompt() string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	QuickLogin(ctx context.Context) error
	Status(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Update(ctx context.Context) error
	Check(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

func runREPL(ctx context.Context, reader *bufio.Reader, exec executor, out io.Writer) {
	fmt.Fprintln(out, "Welcome to the wallet shell (type 'help' for commands)")

	// read directly from the shared reader: commands prompt for further
	// input on it, so nothing may buffer ahead of them
	for {
		fmt.Fprint(out, exec.Prompt())
		line, readErr := reader.ReadString('\n')
		if readErr != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		var err error

		switch cmd {
		case "help":
			if exec.IsAuthenticated() {
				fmt.Fprintln(out, "Available commands: status, whoami, update, quick, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, quick, check, status, exit")
			}
		case "register":
			err = exec.Register(ctx)
		case "login":
			err = exec.Login(ctx)
		case "quick":
			err = exec.QuickLogin(ctx)
		case "status":
			err = exec.Status(ctx)
		case "whoami":
			err = exec.WhoAmI(ctx)
		case "update":
			err = exec.Update(ctx)
		case "check":
			err = exec.Check(ctx, args)
		case "logout":
			err = exec.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			fmt.Fprintln(out, "Error:", err.Error())
		}
	}
}

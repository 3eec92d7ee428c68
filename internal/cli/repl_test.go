package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	authed bool
	calls  []string
	args   []string
}

func (f *fakeExec) IsAuthenticated() bool { return f.authed }
func (f *fakeExec) Prompt() string        { return "> " }

func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	f.authed = true
	return nil
}

func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.authed = true
	return nil
}

func (f *fakeExec) QuickLogin(ctx context.Context) error {
	f.calls = append(f.calls, "quick")
	return nil
}

func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}

func (f *fakeExec) Update(ctx context.Context) error {
	f.calls = append(f.calls, "update")
	return nil
}

func (f *fakeExec) Check(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "check")
	f.args = args
	return nil
}

func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.authed = false
	return nil
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"register",
		"status",
		"check tag alice_01",
		"logout",
		"exit",
	}, "\n") + "\n"

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), bufio.NewReader(strings.NewReader(input)), exec, &out)

	assert.Equal(t, []string{"register", "status", "check", "logout"}, exec.calls)
	assert.Equal(t, []string{"tag", "alice_01"}, exec.args)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_UnknownCommandAndBlankLines(t *testing.T) {
	input := "\nbogus\nexit\n"

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), bufio.NewReader(strings.NewReader(input)), exec, &out)

	assert.Empty(t, exec.calls)
	assert.Contains(t, out.String(), "Unknown command: bogus")
}

func TestRunREPL_EOFExits(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), bufio.NewReader(strings.NewReader("status\n")), exec, &out)
	assert.Equal(t, []string{"status"}, exec.calls)
}

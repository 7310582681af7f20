// Package provider obtains the raw text clispec parses: a program's --help
// output or its manual page.
package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("clispec.provider")

var (
	// ErrUnknownCommand means the program is not installed.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrNoText means the program exists but produced no help or man text.
	ErrNoText = errors.New("no text available")
)

// DefaultTimeout bounds each program invocation.
const DefaultTimeout = 5 * time.Second

// Provider returns the raw text describing a command, given its path from
// the root program ("git", "remote", "add").
type Provider interface {
	Name() string
	Text(ctx context.Context, path []string) (string, error)
}

// Runner runs a program and returns what it wrote to stdout and stderr. A
// missing program is reported as ErrUnknownCommand.
type Runner func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

// pagerEnv keeps programs from waiting on a pager or a terminal.
var pagerEnv = []string{
	"PAGER=cat",
	"GIT_PAGER=cat",
	"MANPAGER=cat",
	"TERM=dumb",
	"GIT_TERMINAL_PROMPT=0",
}

// Exec runs programs with os/exec. A non-zero exit status is not an error
// when the program produced output: many programs exit 1 after printing
// their help.
func Exec(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	var exitErr *exec.ExitError
	if err != nil && !(errors.As(err, &exitErr) && len(out) > 0) {
		return out, err
	}
	return out, nil
}

// Help runs "<path> --help", falling back to "<path> -h".
type Help struct {
	Runner  Runner
	Timeout time.Duration
	// Flags are tried in order; the default is --help then -h.
	Flags []string
}

// NewHelp returns a Help provider that runs programs with Exec.
func NewHelp(timeout time.Duration) *Help {
	return &Help{Runner: Exec, Timeout: timeout}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Text(ctx context.Context, path []string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("%w: empty command path", ErrUnknownCommand)
	}
	flags := h.Flags
	if len(flags) == 0 {
		flags = []string{"--help", "-h"}
	}
	for _, flag := range flags {
		args := append(append([]string{}, path[1:]...), flag)
		log.Infof("running %s %s", path[0], strings.Join(args, " "))

		out, err := run(ctx, h.Runner, h.Timeout, pagerEnv, path[0], args...)
		if errors.Is(err, ErrUnknownCommand) {
			return "", err
		}
		if err != nil {
			log.Debugf("%s %s: %s", path[0], flag, err)
			continue
		}
		if text := string(out); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoText, strings.Join(path, " "))
}

// Man runs "man <man-page>", where the page name joins the path with dashes
// ("git-remote-add"), and strips overstrike formatting from the result.
type Man struct {
	Runner  Runner
	Timeout time.Duration
}

// NewMan returns a Man provider that runs man with Exec.
func NewMan(timeout time.Duration) *Man {
	return &Man{Runner: Exec, Timeout: timeout}
}

func (m *Man) Name() string {
	return "man"
}

func (m *Man) Text(ctx context.Context, path []string) (string, error) {
	if len(path) == 0 {
		return "", fmt.Errorf("%w: empty command path", ErrUnknownCommand)
	}
	page := strings.Join(path, "-")
	log.Infof("running man %s", page)

	env := append([]string{"MANWIDTH=80", "MAN_KEEP_FORMATTING=0"}, pagerEnv...)
	out, err := run(ctx, m.Runner, m.Timeout, env, "man", page)
	if errors.Is(err, ErrUnknownCommand) {
		// No man(1) on this system is the same as no page.
		return "", fmt.Errorf("%w: man is not installed", ErrNoText)
	}
	text := RemoveOverstrike(string(out))
	if err != nil || strings.TrimSpace(text) == "" || strings.HasPrefix(text, "No manual entry") {
		return "", fmt.Errorf("%w: man %s", ErrNoText, page)
	}
	return text, nil
}

func run(ctx context.Context, runner Runner, timeout time.Duration, env []string, name string, args ...string) ([]byte, error) {
	if runner == nil {
		runner = Exec
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return runner(ctx, env, name, args...)
}

// RemoveOverstrike strips the backspace sequences man uses for bold
// ("N\bN") and underline ("_\bN"), keeping the character after each
// backspace.
func RemoveOverstrike(s string) string {
	if !strings.ContainsRune(s, '\b') {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && runes[i+1] == '\b' {
			out = append(out, runes[i+2])
			i += 2
			continue
		}
		out = append(out, runes[i])
	}
	return string(out)
}

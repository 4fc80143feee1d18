package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/irontodo/internal/app"
	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errReported marks errors the user has already seen as a notification
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

// openApp builds the app with terminal notifications and restores the session
func openApp(cmd *cobra.Command) (*app.App, error) {
	printer := notify.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	a, err := app.New(cfg, printer)
	if err != nil {
		return nil, err
	}

	if err := a.Start(cmd.Context()); err != nil {
		_ = a.Close()
		return nil, reported(err)
	}
	return a, nil
}

// requireAuth is openApp for commands that only make sense when signed in
func requireAuth(cmd *cobra.Command) (*app.App, error) {
	a, err := openApp(cmd)
	if err != nil {
		return nil, err
	}
	if !a.Session.Authenticated() {
		_ = a.Close()
		return nil, fmt.Errorf("%w: run 'irontodo auth login' first", apperr.ErrNotAuthenticated)
	}
	return a, nil
}

// prompter reads answers from the command's input. One bufio.Reader is kept
// per command run so piped answers are not lost between questions.
type prompter struct {
	in  io.Reader
	out io.Writer
	r   *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, out: cmd.OutOrStdout(), r: bufio.NewReader(in)}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// secret reads without echo when the input is a terminal
func (p *prompter) secret(label string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return p.line(label)
	}

	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *prompter) confirm(question string) bool {
	answer, err := p.line(question + " [y/N]: ")
	if err != nil {
		return false
	}
	return answer == "y" || answer == "Y"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func statusIcon(t model.Todo) string {
	if t.IsCompleted() {
		return "[x]"
	}
	return "[ ]"
}

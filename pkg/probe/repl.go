package probe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

const (
	historyFile = ".lumaprobe_history"
	prompt      = "luma> "
	banner      = "luma runtime probe\nCtrl+C cancels input, Ctrl+D exits. Type help for commands."
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

// colorEnabled follows the NO_COLOR convention and only colors real
// terminals.
func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// REPL drives a Session through a line editor with history.
type REPL struct {
	session *Session
	color   bool
}

func NewREPL(s *Session) *REPL {
	return &REPL{session: s, color: colorEnabled()}
}

// DisableColor forces plain output regardless of the terminal.
func (r *REPL) DisableColor() { r.color = false }

func (r *REPL) paint(s string, f func(string) string) string {
	if !r.color {
		return s
	}
	return f(s)
}

// Run loops until quit or EOF, returning a process exit code.
func (r *REPL) Run() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, r.paint(err.Error(), red))
			return 1
		}

		out, err := r.session.Exec(line)
		if errors.Is(err, ErrQuit) {
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, r.paint(err.Error(), red))
			continue
		}
		if out != "" {
			fmt.Println(r.paint(out, blue))
		}
		ln.AppendHistory(line)
	}
}

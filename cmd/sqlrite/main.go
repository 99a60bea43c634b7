// Command sqlrite is an interactive shell for the in-memory sqlrite engine.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"

	"github.com/tuannm99/sqlrite"
	"github.com/tuannm99/sqlrite/internal"
)

var CLI struct {
	Config   string `name:"config" short:"c" help:"YAML config file" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error); overrides config"`
	History  string `name:"history" help:"History file path; overrides config" type:"path"`
	File     string `arg:"" optional:"" help:"Run the statements in FILE and exit" type:"existingfile"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("sqlrite"),
		kong.Description("A tiny in-memory SQL engine: CREATE TABLE and INSERT."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	cfg, err := internal.LoadConfig(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.History != "" {
		cfg.REPL.HistoryFile = CLI.History
	}
	if cfg.REPL.HistoryFile == "" {
		cfg.REPL.HistoryFile = defaultHistoryPath()
	}

	if err := setupLogger(cfg.Log.Level, os.Stderr); err != nil {
		return err
	}
	slog.Debug("config loaded", "app", cfg.AppName, "history", cfg.REPL.HistoryFile)

	shell := NewShell(sqlrite.Open(), os.Stdout)
	if CLI.File != "" {
		return runScript(shell, CLI.File)
	}
	return runREPL(shell, cfg)
}

func setupLogger(level string, w io.Writer) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func runScript(shell *Shell, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := feed(shell, f); err != nil {
		return err
	}
	if n := shell.Failures(); n > 0 {
		return fmt.Errorf("%s: %d statement(s) failed", path, n)
	}
	return nil
}

// feed pushes every line of r through the shell, then runs any trailing
// statement that was left without a ';'.
func feed(shell *Shell, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if shell.HandleLine(sc.Text()) {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	shell.Flush()
	return nil
}

func runREPL(shell *Shell, cfg *internal.SqlriteConfig) error {
	h := NewHistory(cfg.REPL.HistoryFile)
	if err := h.Load(cfg.REPL.HistoryLimit); err != nil {
		slog.Warn("history not loaded", "path", cfg.REPL.HistoryFile, "err", err)
	}

	prompt := cfg.REPL.Prompt
	cont := strings.Repeat(" ", max(len(prompt)-4, 0)) + "..> "

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
		HistoryLimit:    cfg.REPL.HistoryLimit,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for _, line := range h.Lines() {
		_ = rl.SaveHistory(line)
	}
	shell.OnStatement = func(stmt string) {
		if err := h.Append(stmt); err != nil {
			slog.Warn("history not saved", "err", err)
		}
	}

	fmt.Fprintf(rl.Stdout(), "%s: enter .help for usage hints\n", cfg.AppName)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			// Ctrl+C drops a half-typed statement.
			shell.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err != nil {
			return nil
		}

		if shell.HandleLine(line) {
			return nil
		}
		if shell.Pending() {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

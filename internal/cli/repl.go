// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/AntonC9018/command-terminal/internal/config"
	"github.com/AntonC9018/command-terminal/internal/shell"
	"github.com/AntonC9018/command-terminal/internal/storage"
	"github.com/AntonC9018/command-terminal/internal/util"
)

// =============================================================================
// SESSION
// =============================================================================

// RunOptions configures one terminal session.
type RunOptions struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Line, when non-empty, is dispatched once and the process exits
	// instead of entering the interactive loop.
	Line string

	// Out receives rendered log entries. Defaults to stdout.
	Out io.Writer
}

// Session ties the shell engine to a line editor, the config file
// and the persistence store for the lifetime of one process run.
type Session struct {
	shell    *shell.Shell
	complete *shell.Autocomplete
	store    *storage.Store // nil when persistence is disabled
	out      io.Writer

	mu     sync.Mutex
	prompt string
	quit   bool

	// pendingStrict holds a reloaded strictness setting until the
	// loop can apply it between dispatches; the engine itself is
	// single-threaded.
	pendingStrict *bool

	// rendered counts log appends already written to out, so each
	// dispatch only prints what it produced.
	rendered uint64
}

// Run executes one terminal session and returns when the user quits
// or the one-shot line has been dispatched. A non-nil error means the
// session could not start; dispatch-level failures are rendered, not
// returned.
func Run(opts RunOptions) error {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	sess := &Session{
		out:    out,
		prompt: cfg.Terminal.Prompt,
	}
	sess.shell = shell.New(shell.Options{
		LogCapacity:  cfg.Terminal.LogCapacity,
		StrictErrors: cfg.Terminal.StrictErrors,
	})
	sess.complete = shell.NewAutocomplete(sess.shell)
	sess.registerHostCommands()

	if cfg.Persistence.Enabled {
		if err := sess.openStore(cfg); err != nil {
			// Persistence is a convenience; the session still works
			// without it.
			fmt.Fprintln(out, WarningStyle.Render(err.Error()))
		}
	}
	defer sess.closeStore()

	if opts.Line != "" {
		return sess.runOnce(opts.Line)
	}

	watcher, err := watchConfig(cfgPath, sess)
	if err == nil {
		defer watcher.Close()
	}

	return sess.runInteractive(cfg)
}

func (s *Session) openStore(cfg *config.Config) error {
	path := cfg.Persistence.DatabasePath
	if path == "" {
		var err error
		path, err = config.DefaultDatabasePath()
		if err != nil {
			return fmt.Errorf("persistence disabled: %w", err)
		}
	}
	store, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("persistence disabled: %w", err)
	}
	s.store = store

	// Restore the variable table from the previous run.
	vars, err := store.Variables()
	if err != nil {
		return fmt.Errorf("persistence disabled: %w", err)
	}
	for name, value := range vars {
		s.shell.Context().SetVariable(name, value)
	}
	return nil
}

func (s *Session) closeStore() {
	if s.store == nil {
		return
	}
	s.syncVariables()
	s.store.Close()
	s.store = nil
}

// syncVariables writes the current variable table back to the store.
// Bindings removed during the session are deleted.
func (s *Session) syncVariables() {
	persisted, err := s.store.Variables()
	if err != nil {
		return
	}
	live := make(map[string]bool)
	s.shell.Context().EachVariable(func(name, value string) {
		live[name] = true
		s.store.SaveVariable(name, value)
	})
	for name := range persisted {
		if !live[name] {
			s.store.DeleteVariable(name)
		}
	}
}

// =============================================================================
// MODES
// =============================================================================

// runOnce dispatches a single line non-interactively. The process
// exit status reflects whether the dispatch logged an error.
func (s *Session) runOnce(line string) error {
	s.shell.Dispatch(line)
	s.flush()
	if s.shell.HasErrors() {
		return fmt.Errorf("command failed")
	}
	return nil
}

func (s *Session) runInteractive(cfg *config.Config) error {
	editor := liner.NewLiner()
	defer editor.Close()
	editor.SetCtrlCAborts(true)
	editor.SetTabCompletionStyle(liner.TabCircular)
	editor.SetCompleter(s.completeLine)

	s.preloadHistory(editor, cfg.Terminal.HistoryLimit)

	for {
		line, err := editor.Prompt(s.currentPrompt())
		switch err {
		case nil:
		case liner.ErrPromptAborted:
			continue
		case io.EOF:
			fmt.Fprintln(s.out)
			return nil
		default:
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		editor.AppendHistory(line)
		if s.store != nil {
			s.store.AppendHistory(line)
		}

		s.applyPending()
		s.shell.Dispatch(line)
		s.flush()

		s.mu.Lock()
		done := s.quit
		s.mu.Unlock()
		if done {
			return nil
		}
	}
}

func (s *Session) preloadHistory(editor *liner.State, limit int) {
	if s.store == nil || limit <= 0 {
		return
	}
	lines, err := s.store.RecentHistory(limit)
	if err != nil {
		return
	}
	for _, line := range lines {
		editor.AppendHistory(line)
	}
}

// completeLine adapts the shell's cyclic autocomplete engine to the
// line editor's completer shape: every candidate line at once, in
// cycle order.
func (s *Session) completeLine(line string) []string {
	s.complete.SetInput(line)
	defer s.complete.Reset()

	out := make([]string, 0, len(s.complete.Candidates()))
	for range s.complete.Candidates() {
		out = append(out, s.complete.Current())
		s.complete.Move(1)
	}
	return out
}

// =============================================================================
// RENDERING
// =============================================================================

// flush writes every log entry appended since the previous flush.
func (s *Session) flush() {
	log := s.shell.Log()
	fresh := log.Total() - s.rendered
	s.rendered = log.Total()

	// Eviction (or an explicit clear) may have dropped entries that
	// were never rendered; show what's still retained.
	n := int(fresh)
	if n > log.Len() {
		n = log.Len()
	}
	for _, e := range log.Tail(n) {
		fmt.Fprintln(s.out, RenderEntry(e))
	}
}

func (s *Session) currentPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// applyReload is called by the config watcher with freshly loaded
// settings.
func (s *Session) applyReload(cfg *config.Config) {
	strict := cfg.Terminal.StrictErrors
	s.mu.Lock()
	s.prompt = cfg.Terminal.Prompt
	s.pendingStrict = &strict
	s.mu.Unlock()
}

// applyPending pushes reloaded settings into the engine. Called from
// the loop goroutine only.
func (s *Session) applyPending() {
	s.mu.Lock()
	strict := s.pendingStrict
	s.pendingStrict = nil
	s.mu.Unlock()
	if strict != nil {
		s.shell.Context().SetStrictErrors(*strict)
	}
}

// =============================================================================
// HOST COMMANDS
// =============================================================================

// registerHostCommands installs the commands that only make sense
// with a live session behind them.
func (s *Session) registerHostCommands() {
	s.shell.Registry().Register(&shell.Command{
		Name:         "quit",
		MinArgs:      0,
		MaxArgs:      0,
		Help:         "End the session",
		ExtendedHelp: "Usage: quit",
		Handler: func(ctx *shell.Context) {
			ctx.EndParsing()
			s.mu.Lock()
			s.quit = true
			s.mu.Unlock()
		},
	})

	s.shell.Registry().Register(&shell.Command{
		Name:         "history",
		MinArgs:      0,
		MaxArgs:      1,
		Help:         "Show recent command history",
		ExtendedHelp: "Usage: history [count]\nShows the newest lines from the persisted history.",
		Handler:      s.handleHistory,
	})
}

func (s *Session) handleHistory(ctx *shell.Context) {
	count := 20
	if ctx.ArgCount() > 0 {
		count = shell.ParseArg(ctx, 0, "count", shell.Int)
	}
	ctx.EndParsing()
	if ctx.HasErrors() {
		return
	}

	if s.store == nil {
		ctx.LogWarning("History persistence is disabled.")
		return
	}
	lines, err := s.store.RecentHistory(count)
	if err != nil {
		ctx.LogError(fmt.Sprintf("Could not read history: %v", err))
		return
	}
	if len(lines) == 0 {
		ctx.LogInfo("History is empty.")
		return
	}
	// Right-align the line numbers so the commands line up.
	numbers := make([]string, len(lines))
	for i := range lines {
		numbers[i] = fmt.Sprintf("%d", i+1)
	}
	width := util.MaxWidth(numbers)
	for i, line := range lines {
		ctx.LogInfo(fmt.Sprintf("%s  %s", util.PadRight(numbers[i], width), line))
	}
}

// Package main is the entry point for the killring command.
//
// killring loads a document, runs kill and yank actions against it and
// prints the result:
//
//	killring -at 1:1 -e killLine -e "yank count=1" notes.txt
//	killring -at 2:1 -k "C-u 3 C-k" -k C-y notes.txt
//	killring -s macro.lua < notes.txt
//	killring -i -watch -c killring.toml notes.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dshills/killring/internal/config"
	"github.com/dshills/killring/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath  string
	logLevel    string
	at          string
	steps       []step
	keymaps     stringList
	scripts     stringList
	interactive bool
	watch       bool
	output      string
	file        string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Output: os.Stderr,
		Prefix: "killring",
	})
	logging.SetDefault(logger)

	doc, closeDoc, err := openDocument(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	s, err := newSession(cfg, doc, logger, sessionOptions{out: os.Stdout, keymaps: opts.keymaps})
	closeDoc()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer s.close()

	if opts.watch && opts.configPath != "" {
		r, err := config.WatchFile(opts.configPath, config.Options{}, 200*time.Millisecond, s.reload, s.reloadError)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			defer r.Close()
		}
	}

	if opts.at != "" {
		p, err := parsePoint(opts.at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := s.moveTo(p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	for _, st := range opts.steps {
		do := s.exec
		if st.keys {
			do = s.press
		}
		if err := do(st.text); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	for _, path := range opts.scripts {
		if err := s.runScript(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.interactive {
		if err := repl(ctx, s, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if err := writeDocument(opts.output, s.text()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openDocument opens the input file, or stdin when no file is given and
// stdin is not needed for commands.
func openDocument(opts options) (io.Reader, func(), error) {
	if opts.file != "" {
		f, err := os.Open(opts.file)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if opts.interactive {
		return strings.NewReader(""), func() {}, nil
	}
	return os.Stdin, func() {}, nil
}

func writeDocument(path, text string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// repl reads commands from in until EOF, ":quit" or ctx ends.
func repl(ctx context.Context, s *session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			if err := s.exec(line); err != nil && !errors.Is(err, errEmptyCommand) {
				fmt.Fprintf(out, "error: %v\n", err)
			}
			continue
		}

		cmd, arg, _ := strings.Cut(line[1:], " ")
		arg = strings.TrimSpace(arg)
		switch cmd {
		case "q", "quit":
			return nil
		case "p", "print":
			fmt.Fprintln(out, s.text())
		case "goto":
			p, err := parsePoint(arg)
			if err == nil {
				err = s.moveTo(p)
			}
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "key":
			if err := s.press(arg); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "keys":
			for _, b := range s.keys.Bindings() {
				fmt.Fprintf(out, "  %-12s %-28s %s\n", b.Keys, b.Action, b.Description)
			}
		case "ring":
			printRing(s, out)
		case "script":
			if err := s.runScript(ctx, arg); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
			}
		case "stats":
			printStats(s, out)
		default:
			fmt.Fprintf(out, "error: unknown command :%s\n", cmd)
		}
	}
}

func printRing(s *session, out io.Writer) {
	if s.ring == nil {
		fmt.Fprintln(out, "kill ring is disabled")
		return
	}
	pointer, _ := s.ring.Pointer()
	for i, e := range s.ring.Entries() {
		mark := " "
		if i == pointer {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %d [%s] %q\n", mark, i+1, e.Kind(), e.String())
	}
}

func printStats(s *session, out io.Writer) {
	snap := s.disp.Metrics().Snapshot()
	fmt.Fprintf(out, "dispatches=%d errors=%d panics=%d\n", snap.TotalDispatches, snap.TotalErrors, snap.TotalPanics)
	for _, a := range snap.Actions {
		fmt.Fprintf(out, "  %-28s %5d  avg %s\n", a.Name, a.DispatchCount, a.AverageDuration().Round(time.Microsecond))
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.StringVar(&opts.at, "at", "", "Initial cursor position as line:col (1-based)")
	flag.Var(stepList{steps: &opts.steps}, "e", "Action to run, e.g. \"killLine\" or \"browse index=2\" (repeatable)")
	flag.Var(stepList{steps: &opts.steps, keys: true}, "k", "Key sequence to run, e.g. \"C-u 2 C-k\" (repeatable)")
	flag.Var(&opts.keymaps, "keymap", "TOML or YAML keymap loaded over the defaults (repeatable)")
	flag.Var(&opts.scripts, "s", "Lua script to run after actions (repeatable)")
	flag.BoolVar(&opts.interactive, "i", false, "Read commands from stdin")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&opts.output, "o", "", "Write the document to this file instead of stdout")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "killring - Emacs-style kill ring for plain text\n\n")
		fmt.Fprintf(os.Stderr, "Usage: killring [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nActions:\n")
		fmt.Fprintf(os.Stderr, "  killLine killWord backwardKillWord killRegion copyRegion\n")
		fmt.Fprintf(os.Stderr, "  killRectangle copyRectangle yank yankPop browse cancelAppend\n")
		fmt.Fprintf(os.Stderr, "\nInteractive commands:\n")
		fmt.Fprintf(os.Stderr, "  :goto line:col  :key keys  :keys  :print  :ring  :stats  :script path  :quit\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvVars() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("killring %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one file\n")
		os.Exit(1)
	}

	return opts
}

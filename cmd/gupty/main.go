package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/mongodb-labs/gupty"
	"github.com/mongodb-labs/gupty/config"
	"github.com/mongodb-labs/gupty/script"
)

const version = "0.1.0"

func main() {
	var (
		showVersion = pflag.BoolP("version", "v", false, "print the version and exit")
		showHelp    = pflag.BoolP("help", "h", false, "print this help message and exit")
		debug       = pflag.BoolP("debug", "d", false, "enable debug logging")
		shellFlag   = pflag.String("shell", "", "shell to run under the pty (default: $SHELL, then sh)")
		logFile     = pflag.String("log-file", "gupty.log", "write structured logs to this file")
		monitorFile = pflag.String("monitor-file", ".gupty.monitor", "write the live status/command monitor to this file")
		configFile  = pflag.String("config", "", "YAML file of CLI defaults and keymap overrides")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Println("gupty version", version)
		os.Exit(0)
	}

	args := pflag.Args()
	if *showHelp || len(args) != 1 {
		printUsage()
		os.Exit(0)
	}
	scriptPath := args[0]

	cfg, tables, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gupty:", err)
		printTrailer()
		os.Exit(gupty.ExitRuntime.Code())
	}
	if *shellFlag != "" {
		cfg.Shell = *shellFlag
	}
	if pflag.CommandLine.Changed("log-file") || cfg.LogFile == "" {
		cfg.LogFile = *logFile
	}
	if pflag.CommandLine.Changed("monitor-file") || cfg.MonitorFile == "" {
		cfg.MonitorFile = *monitorFile
	}

	log, closeLog := newLogger(cfg.LogFile, *debug)
	defer closeLog()

	commands, err := gupty.ResolveCommands(script.ReadLines, scriptPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gupty:", err)
		printTrailer()
		os.Exit(gupty.ExitRuntime.Code())
	}

	sess := gupty.NewSession(cfg.Shell, cfg.MonitorFile, tables, log)

	// A signal arriving between here and a completed Init has no
	// Session.signalWatcher yet to set the atomic flags; install a
	// best-effort early handler so Ctrl-C during pty setup still aborts
	// cleanly instead of leaving the terminal in an indeterminate state.
	earlySig := make(chan os.Signal, 2)
	signal.Notify(earlySig, syscall.SIGINT, syscall.SIGQUIT)
	initDone := make(chan struct{})
	go func() {
		select {
		case <-earlySig:
			os.Exit(gupty.ExitEarly.Code())
		case <-initDone:
		}
	}()

	if err := sess.Init(); err != nil {
		close(initDone)
		signal.Stop(earlySig)
		fmt.Fprintln(os.Stderr, "gupty:", err)
		printTrailer()
		os.Exit(gupty.ExitRuntime.Code())
	}
	close(initDone)
	signal.Stop(earlySig)

	runErr := sess.Run(commands)
	closeErr := sess.Close()
	if runErr == nil {
		runErr = closeErr
	}

	exitErr := gupty.NewExitError(runErr)
	log.Debug("session finished", "kind", exitErr.Kind.String())
	printTrailer()
	os.Exit(exitErr.Kind.Code())
}

func newLogger(path string, debug bool) (*slog.Logger, func()) {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}

	if path == "" {
		return slog.New(slog.NewJSONHandler(discardWriter{}, &slog.HandlerOptions{Level: level})), func() {}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gupty: open log file:", err)
		return slog.New(slog.NewJSONHandler(discardWriter{}, &slog.HandlerOptions{Level: level})), func() {}
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), func() { _ = f.Close() }
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func printUsage() {
	fmt.Println("gupty - a scripted pseudoterminal driver")
	fmt.Println()
	fmt.Println("Usage: gupty [OPTIONS] SCRIPT")
	fmt.Println()
	fmt.Println("Options:")
	pflag.PrintDefaults()
}

func printTrailer() {
	fmt.Println()
	fmt.Println("[exited gupty]")
}

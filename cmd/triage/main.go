package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"zonetriage/internal/config"
	"zonetriage/internal/handoff"
	"zonetriage/internal/inventory"
	"zonetriage/internal/pipeline"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitNoInput   = 2
	exitWriteFail = 3
)

var (
	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorYellow = color.New(color.FgYellow)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()

	fs := pflag.NewFlagSet("triage", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.StringP("input", "i", cfg.Input, "inventory file (one absolute path per line)")
	output := fs.StringP("output", "o", cfg.Output, "candidate target list to write")
	provider := fs.String("provider", cfg.Remote.Provider, "remote classifier provider: openrouter, groq, gemini")
	model := fs.String("model", cfg.Remote.Model, "remote model id (provider default when empty)")
	budget := fs.Int("budget", cfg.Remote.Budget, "maximum zones submitted to the remote classifier")
	timeout := fs.Duration("timeout", cfg.Remote.Timeout, "per-request timeout for the remote classifier")
	workers := fs.IntP("workers", "w", cfg.Workers, "parallel zone expansion workers")
	root := fs.String("root", cfg.Root, "confine reads and writes to this directory")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	cfg.Input = *input
	cfg.Output = *output
	cfg.Root = *root
	cfg.Workers = *workers
	cfg.Remote.Budget = *budget
	cfg.Remote.Timeout = *timeout
	cfg.Remote.Model = *model
	if fs.Changed("provider") {
		cfg.SetProvider(*provider)
	}

	logger := log.New(stdout, "", 0)
	p, err := pipeline.New(ctx, cfg, nil, logger)
	if err != nil {
		colorRed.Fprintf(stderr, "[x] %v\n", err)
		return exitFailure
	}
	defer p.Close()

	start := time.Now()
	rep, err := p.Run(ctx)
	switch {
	case err == nil:
		colorGreen.Fprintf(stderr, "[+] %d targets written to %s in %s (run %s)\n",
			len(rep.Targets), cfg.Output, time.Since(start).Round(time.Millisecond), rep.RunID)
		return exitOK
	case errors.Is(err, inventory.ErrNoInput):
		colorYellow.Fprintf(stderr, "[-] nothing to triage: %v\n", err)
		return exitNoInput
	case errors.Is(err, handoff.ErrWrite):
		colorRed.Fprintf(stderr, "[x] %v\n", err)
		return exitWriteFail
	default:
		colorRed.Fprintf(stderr, "[x] %v\n", err)
		return exitFailure
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"zonetriage/internal/config"
	"zonetriage/internal/handoff"
	"zonetriage/internal/inventory"
	"zonetriage/internal/runlog"
	"zonetriage/internal/safeio"
	"zonetriage/internal/triage"
	"zonetriage/internal/zone"
)

// New wires a Pipeline from cfg. Optional sinks (mirror, run ledger) that
// fail to initialize are logged and left out.
func New(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *log.Logger) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = log.Default()
	}

	fs := safeio.Unrestricted()
	if cfg.Root != "" {
		var err error
		fs, err = safeio.NewSafeFS(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("workspace root: %w", err)
		}
	}

	classifier, err := triage.NewDefault(ctx, cfg.Remote, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	p := &Pipeline{
		Loader:     inventory.NewLoader(fs),
		Input:      cfg.Input,
		Exclusions: zone.DefaultExclusions,
		Classifier: classifier,
		Intent:     triage.DefaultIntent,
		Sink:       handoff.NewFileSink(fs, cfg.Output),
		Output:     cfg.Output,
		Logger:     logger,
		Workers:    cfg.Workers,
	}

	if cfg.Mirror.Enabled {
		m, err := handoff.NewS3Mirror(cfg.Mirror)
		if err != nil {
			logger.Printf("[!] AGENT: mirror disabled: %v", err)
		} else {
			p.Mirror = m
		}
	}

	ledger, err := runlog.Open(ctx, cfg.RunLogDSN)
	if err != nil {
		logger.Printf("[!] AGENT: run ledger disabled: %v", err)
		ledger = runlog.Nop{}
	}
	p.Ledger = ledger
	return p, nil
}

// Close releases the classifier's client and the run ledger.
func (p *Pipeline) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if cl, ok := p.Classifier.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	if p.Ledger != nil {
		errs = append(errs, p.Ledger.Close())
	}
	return errors.Join(errs...)
}

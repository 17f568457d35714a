// Package pipeline runs one triage pass: load the inventory, cluster it into
// zones, classify the zones, expand the flagged zones back into files and hand
// the list off.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"zonetriage/internal/handoff"
	"zonetriage/internal/inventory"
	"zonetriage/internal/runlog"
	"zonetriage/internal/triage"
	"zonetriage/internal/zone"
)

type Pipeline struct {
	Loader     *inventory.Loader
	Input      string
	Exclusions []string
	Classifier triage.Classifier
	Intent     string
	Sink       handoff.Sink
	Output     string
	Mirror     handoff.Mirror
	Ledger     runlog.Ledger
	Logger     *log.Logger
	Workers    int

	NewRunID func() string
	Now      func() time.Time
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Files     int
	Zones     []string
	Flagged   []string
	Source    string
	Targets   []string
	MirrorKey string
}

// Run executes the pipeline once. inventory.ErrNoInput and handoff.ErrWrite
// come back wrapped so callers can branch with errors.Is.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	started := p.now()
	rep, err := p.run(ctx, Report{RunID: p.runID()})
	if errors.Is(err, inventory.ErrNoInput) {
		return rep, err
	}
	p.record(ctx, rep, started, err)
	return rep, err
}

func (p *Pipeline) run(ctx context.Context, rep Report) (Report, error) {
	p.logf("[*] AGENT: Initializing Hierarchical Scan...")

	loader := p.Loader
	if loader == nil {
		loader = inventory.NewLoader(nil)
	}
	files, err := loader.Load(ctx, p.Input)
	if err != nil {
		return rep, err
	}
	rep.Files = len(files)

	exclusions := p.Exclusions
	if exclusions == nil {
		exclusions = zone.DefaultExclusions
	}
	rep.Zones = zone.Cluster(files, exclusions)
	p.logf("[*] AGENT: Analyzed %d files into %d Context Zones.", len(files), len(rep.Zones))

	p.logf("[*] AGENT: Querying Neural Ops for High-Risk Zones...")
	verdict := p.classifier().Classify(ctx, rep.Zones, p.intent())
	rep.Flagged = verdict.Zones
	rep.Source = verdict.Source
	p.logf("[*] AGENT: Isolated %d High-Risk Zones.", len(rep.Flagged))

	groups, err := zone.Groups(ctx, files, rep.Flagged, p.Workers)
	if err != nil {
		return rep, err
	}
	targets := make([]string, 0, len(files))
	for i, members := range groups {
		if len(members) == 0 {
			continue
		}
		p.logf("    -> Inspecting Zone: %s (%d objects)", rep.Flagged[i], len(members))
		targets = append(targets, members...)
	}
	rep.Targets = targets

	if p.Sink == nil {
		return rep, fmt.Errorf("%w: no sink configured", handoff.ErrWrite)
	}
	if err := p.Sink.Write(ctx, targets); err != nil {
		return rep, err
	}
	p.logf("[*] AGENT: Handoff complete. %d vectors queued for Deep Analysis.", len(targets))

	if p.Mirror != nil {
		key, err := p.Mirror.Publish(ctx, rep.RunID, handoff.Encode(targets))
		if err != nil {
			p.logf("[!] AGENT: mirror upload failed: %v", err)
		} else {
			rep.MirrorKey = key
		}
	}
	return rep, nil
}

func (p *Pipeline) record(ctx context.Context, rep Report, started time.Time, runErr error) {
	if p.Ledger == nil {
		return
	}
	run := runlog.Run{
		ID:         rep.RunID,
		StartedAt:  started,
		FinishedAt: p.now(),
		Files:      rep.Files,
		Zones:      len(rep.Zones),
		Flagged:    len(rep.Flagged),
		Targets:    len(rep.Targets),
		Source:     rep.Source,
		Output:     p.Output,
		MirrorKey:  rep.MirrorKey,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := p.Ledger.Record(ctx, run); err != nil {
		p.logf("[!] AGENT: run ledger write failed: %v", err)
	}
}

func (p *Pipeline) classifier() triage.Classifier {
	if p.Classifier != nil {
		return p.Classifier
	}
	return triage.NewHeuristic()
}

func (p *Pipeline) intent() string {
	if p.Intent != "" {
		return p.Intent
	}
	return triage.DefaultIntent
}

func (p *Pipeline) runID() string {
	if p.NewRunID != nil {
		return p.NewRunID()
	}
	return uuid.NewString()
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logger == nil {
		return
	}
	p.Logger.Printf(format, args...)
}

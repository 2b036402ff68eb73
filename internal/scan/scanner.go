package scan

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jsminer/jsminer/internal/config"
	"github.com/jsminer/jsminer/internal/discover"
	"github.com/jsminer/jsminer/internal/rules"
	"github.com/jsminer/jsminer/internal/score"
)

// bundleCacheSize bounds the identical-bundle skip cache. Apps commonly
// serve the same bundle under several hashed URLs; one scan is enough.
const bundleCacheSize = 512

// ProgressSink receives live scan counters. Methods are called from worker
// goroutines and must be safe for concurrent use.
type ProgressSink interface {
	TargetScheduled()
	TargetDone()
	FetchError()
	FindingAccepted()
}

// Scanner runs one scan: a worker pool draining the frontier, feeding every
// fetched body through the rule engine and scorer into the aggregator. All
// state is per-run, so multiple scanners can run isolated in one process.
type Scanner struct {
	opts      *config.Options
	engine    *rules.Engine
	scorer    *score.Scorer
	fetcher   *Fetcher
	throttler *Throttler
	pauser    *Pauser

	// OnFinding, when set, is called once per unique finding as it is
	// accepted. Callbacks run on worker goroutines.
	OnFinding func(Finding)

	// Progress, when set, receives live counters.
	Progress ProgressSink

	seenBodies *lru.Cache[[16]byte, string]
}

// NewScanner wires a scanner from the validated run options.
func NewScanner(opts *config.Options) (*Scanner, error) {
	fetcher, err := NewFetcher(opts)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[[16]byte, string](bundleCacheSize)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		opts:       opts,
		engine:     rules.NewEngine(opts.Endpoints, opts.Secrets, opts.URLs),
		scorer:     score.New(),
		fetcher:    fetcher,
		throttler:  NewThrottler(opts.Delay, opts.AdaptiveThrottle),
		seenBodies: cache,
	}, nil
}

// SetPauser installs a cooperative pause gate for the workers.
func (s *Scanner) SetPauser(p *Pauser) { s.pauser = p }

func (s *Scanner) scheduled() {
	if s.Progress != nil {
		s.Progress.TargetScheduled()
	}
}

// Run drains the frontier seeded with the given targets and returns the
// aggregated result. Cancelling ctx abandons in-flight fetches promptly but
// still returns the findings gathered so far.
func (s *Scanner) Run(ctx context.Context, seeds []Target) *Result {
	started := time.Now()
	agg := NewAggregator()
	frontier := NewFrontier(ctx)

	for _, seed := range seeds {
		if frontier.Add(seed) {
			s.scheduled()
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.opts.Concurrency; i++ {
		g.Go(func() error {
			s.worker(ctx, frontier, agg)
			return nil
		})
	}
	_ = g.Wait()

	return agg.Result(started, frontier.Scheduled())
}

func (s *Scanner) worker(ctx context.Context, frontier *Frontier, agg *Aggregator) {
	for {
		target, ok := frontier.Next()
		if !ok {
			return
		}
		if s.pauser != nil {
			s.pauser.Wait(ctx)
			if ctx.Err() != nil {
				frontier.Done()
				return
			}
		}
		if target.Kind == KindPage || target.Kind == KindScript {
			if delay := s.throttler.Delay(); delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					frontier.Done()
					return
				}
			}
		}
		s.process(ctx, target, frontier, agg)
		if s.Progress != nil {
			s.Progress.TargetDone()
		}
		frontier.Done()
	}
}

// process fetches one target, expands the frontier for HTML pages, and
// scans the body. A target's findings land atomically: nothing is emitted
// until its asset is fully scanned.
func (s *Scanner) process(ctx context.Context, target Target, frontier *Frontier, agg *Aggregator) {
	asset := s.fetcher.Fetch(ctx, target)
	if asset.Err != nil {
		if ctx.Err() != nil {
			return
		}
		s.throttler.RecordError()
		agg.AddError(target.Address, asset.Err)
		if s.Progress != nil {
			s.Progress.FetchError()
		}
		log.Debug().Str("target", target.Address).Err(asset.Err).Msg("fetch failed")
		return
	}
	if asset.StatusCode != 0 {
		s.throttler.RecordStatus(asset.StatusCode)
	}
	agg.CountFetched()

	// Byte-identical bundles under different URLs yield the same findings
	// modulo source; scanning them again only duplicates review work.
	if target.Kind == KindScript {
		sum := md5.Sum(asset.Body)
		if first, dup, _ := s.seenBodies.PeekOrAdd(sum, target.Address); dup {
			log.Debug().Str("target", target.Address).Str("first", first).
				Msg("skipping identical bundle")
			return
		}
	}

	if asset.HTML() {
		page := discover.Extract(asset.Body, target.Address)
		for _, scriptURL := range page.Scripts {
			addr := NormalizeAddress(scriptURL)
			if addr == "" {
				continue
			}
			if frontier.Add(Target{Kind: KindScript, Address: addr, Depth: target.Depth + 1}) {
				s.scheduled()
			}
		}
		for i, code := range page.Inline {
			added := frontier.Add(Target{
				Kind:    KindInline,
				Address: fmt.Sprintf("%s#inline-%d", target.Address, i+1),
				Depth:   target.Depth + 1,
				Body:    code,
			})
			if added {
				s.scheduled()
			}
		}
	}

	s.scanBody(string(asset.Body), target.Address, agg)
	// Asset body is released here; only findings and snippets survive.
}

func (s *Scanner) scanBody(text, source string, agg *Aggregator) {
	for _, match := range s.engine.Match(text, source) {
		verdict := s.scorer.Score(match)
		if verdict.Discard {
			log.Debug().Str("rule", match.Rule.Type).Str("value", match.Value).
				Str("reason", verdict.Reason).Msg("match discarded")
			continue
		}
		finding := Finding{
			Category:   string(match.Rule.Category),
			Type:       match.Rule.Type,
			Value:      match.Value,
			Severity:   string(rules.EffectiveSeverity(match)),
			Confidence: verdict.Confidence,
			Source:     source,
			Context:    match.Context,
			Low:        verdict.Low,
		}
		if agg.Add(finding) {
			if s.Progress != nil {
				s.Progress.FindingAccepted()
			}
			if s.OnFinding != nil {
				s.OnFinding(finding)
			}
		}
	}
}

package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/numlab/internal/config"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *slog.Logger
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func New(cfg *config.Config, opts ...Option) *Experiment {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Experiment) Registry() *Registry { return e.registry }

// Run validates the configuration and runs one section.
func (e *Experiment) Run(ctx context.Context, name string) (*Result, error) {
	s, err := e.registry.Get(name)
	if err != nil {
		return nil, err
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	return e.run(ctx, s)
}

func (e *Experiment) run(ctx context.Context, s Section) (*Result, error) {
	e.logger.Debug("section started", "section", s.Name, "id", s.ID)
	start := time.Now()

	res, err := s.Run(ctx, e.cfg)
	if err != nil {
		e.logger.Debug("section failed", "section", s.Name, "err", err)
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	res.Section, res.Title = s.Name, s.Title
	res.Duration = time.Since(start)

	e.logger.Debug("section finished", "section", s.Name,
		"duration", res.Duration, "checks", len(res.Checks), "passed", res.Passed())
	return res, nil
}

// RunAll runs the named sections, or every section when names is empty, in
// order. Cancellation is checked between sections; the results completed so
// far are returned with the error.
func (e *Experiment) RunAll(ctx context.Context, names ...string) ([]*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	sections := e.registry.List()
	if len(names) > 0 {
		sections = sections[:0:0]
		for _, name := range names {
			s, err := e.registry.Get(name)
			if err != nil {
				return nil, err
			}
			sections = append(sections, s)
		}
	}

	results := make([]*Result, 0, len(sections))
	for _, s := range sections {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		res, err := e.run(ctx, s)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

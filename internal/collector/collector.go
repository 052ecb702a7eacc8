// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package collector

import (
	"context"
	"time"

	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/metrics"
	"github.com/tomtom215/zetta-collector/internal/models"
	"github.com/tomtom215/zetta-collector/internal/zetta"
)

// Collector builds the station directory once and produces a Document batch
// per Poll.
type Collector struct {
	host       string
	dir        *Directory
	poller     *Poller
	newSession SessionFactory
	breaker    *zetta.Breaker
}

// Option configures a Collector.
type Option func(*Collector)

// WithSessionFactory replaces the session constructor. Tests use it to
// substitute fakes.
func WithSessionFactory(f SessionFactory) Option {
	return func(c *Collector) {
		c.newSession = f
	}
}

// WithBreaker routes every session through b, regardless of
// ZettaConfig.CircuitBreaker.
func WithBreaker(b *zetta.Breaker) Option {
	return func(c *Collector) {
		c.breaker = b
	}
}

// New validates cfg, then builds the station directory. Missing credentials
// return an error wrapping config.ErrInvalidConfig and no Collector.
//
// A directory fetch failure is not an error: the collector starts with an
// empty directory and every Poll returns an empty batch.
func New(ctx context.Context, cfg config.ZettaConfig, pollCfg config.PollConfig, opts ...Option) (*Collector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Collector{
		host: cfg.Host,
		newSession: func() zetta.API {
			return zetta.NewClient(&cfg)
		},
	}
	if cfg.CircuitBreaker {
		c.breaker = zetta.NewBreaker(zetta.DefaultBreakerName)
	}
	for _, opt := range opts {
		opt(c)
	}

	c.poller = NewPoller(c.session, pollCfg)

	session := c.session()
	c.dir = BuildDirectory(ctx, session)
	session.Close()

	return c, nil
}

// session opens a new session, wrapped by the breaker when one is configured.
func (c *Collector) session() zetta.API {
	s := c.newSession()
	if c.breaker != nil {
		return c.breaker.Wrap(s)
	}
	return s
}

// Poll runs one collection cycle: status fan-out, then document build.
// It never fails; stations whose fetch failed are absent from the result.
func (c *Collector) Poll(ctx context.Context) []models.Document {
	if logging.CorrelationIDFromContext(ctx) == "" {
		ctx = logging.ContextWithNewCorrelationID(ctx)
	}
	start := time.Now()

	statuses := c.poller.Poll(ctx, c.dir)
	docs := BuildDocuments(c.host, c.dir, statuses)

	elapsed := time.Since(start)
	metrics.RecordPollCycle(elapsed, len(docs))
	logging.Ctx(ctx).Info().
		Int("documents", len(docs)).
		Int("stations", c.dir.Len()).
		Dur("duration", elapsed).
		Msg("[collector] Poll cycle complete")

	return docs
}

// Directory returns the station directory.
func (c *Collector) Directory() *Directory {
	return c.dir
}

// Host returns the host tag written into every Document.
func (c *Collector) Host() string {
	return c.host
}

// Breaker returns the shared circuit breaker, or nil when disabled.
func (c *Collector) Breaker() *zetta.Breaker {
	return c.breaker
}

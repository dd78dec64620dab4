package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Result is one successful generation, tagged with the engine that
// produced it.
type Result struct {
	Text   string
	Engine string
	Model  string
}

// Chain runs a generation against a named engine, or walks the
// registered fallback order when no name is given. Falling through to
// the next engine is a different attempt against a different provider,
// not a retry. A shared limiter throttles outbound calls across all
// concurrent requests.
type Chain struct {
	engs    *Engines
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewChain(engs *Engines, perSec float64, log *zap.Logger) *Chain {
	if perSec <= 0 {
		perSec = 2
	}
	return &Chain{
		engs:    engs,
		limiter: rate.NewLimiter(rate.Limit(perSec), 1),
		log:     log,
	}
}

// Engines exposes the underlying registry.
func (c *Chain) Engines() *Engines { return c.engs }

// Generate produces text. When name is non-empty only that engine is
// tried; otherwise each engine in order until one succeeds.
func (c *Chain) Generate(ctx context.Context, name, system, user string, atts []Attachment) (Result, error) {
	if name != "" {
		eng, err := c.engs.Get(name)
		if err != nil {
			return Result{}, err
		}
		return c.call(ctx, eng, system, user, atts)
	}

	var lastErr error
	for _, eng := range c.engs.Order() {
		res, err := c.call(ctx, eng, system, user, atts)
		if err == nil {
			return res, nil
		}
		lastErr = err
		c.log.Warn("engine failed, trying next",
			zap.String("engine", eng.Name()),
			zap.Error(err))
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no engines configured")
	}
	return Result{}, fmt.Errorf("all engines failed: %w", lastErr)
}

func (c *Chain) call(ctx context.Context, eng Engine, system, user string, atts []Attachment) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, err
	}
	text, err := eng.Generate(ctx, system, user, atts)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: text, Engine: eng.Name(), Model: eng.GetModel()}, nil
}

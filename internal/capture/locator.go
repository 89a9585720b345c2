package capture

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Strategy is one declarative rule for finding the README region in a
// rendered repository page.
type Strategy struct {
	Name     string
	Selector string
}

// DefaultStrategies returns the ordered locator fallback list, most specific
// first. GitHub has shuffled its README markup several times; each entry
// matches one known revision.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "readme", Selector: "#readme article.markdown-body"},
		{Name: "itemprop", Selector: "article.markdown-body[itemprop='text']"},
		{Name: "entry-content", Selector: "div.markdown-body.entry-content"},
	}
}

// resolveRegion tries each strategy in declared order, waiting up to the
// locator timeout for a visible match. The first hit wins; later strategies
// are never attempted. Exhaustion returns ok=false, never an error.
func (e *Engine) resolveRegion(tabCtx context.Context, targetURL string) (Strategy, bool) {
	for i, strategy := range e.cfg.Strategies {
		if tabCtx.Err() != nil {
			break
		}
		waitCtx, cancel := context.WithTimeout(tabCtx, e.cfg.LocatorTimeout)
		err := e.waitVisible(waitCtx, strategy.Selector)
		cancel()
		if err == nil {
			e.logger.Debug("README region located",
				zap.String("url", targetURL),
				zap.String("strategy", strategy.Name),
				zap.Int("attempt", i+1),
			)
			return strategy, true
		}
		e.logger.Debug("locator strategy missed",
			zap.String("url", targetURL),
			zap.String("strategy", strategy.Name),
			zap.Duration("timeout", e.cfg.LocatorTimeout),
			zap.Error(err),
		)
	}
	return Strategy{}, false
}

// settle pauses briefly after visibility so an in-progress paint can finish
// before the screenshot.
func (e *Engine) settle() time.Duration {
	if e.cfg.SettleDelay > 0 {
		return e.cfg.SettleDelay
	}
	return 200 * time.Millisecond
}

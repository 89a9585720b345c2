// Package discovery scrapes the GitHub trending page and filters
// repositories by topical keywords.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Candidate is one repository picked off the trending listing.
type Candidate struct {
	Name        string
	URL         string
	Description string
}

// DefaultKeywords is the topical filter applied to repository names and
// descriptions.
func DefaultKeywords() []string {
	return []string{
		"ai",
		"llm",
		"artificial intelligence",
		"machine learning",
		"deep learning",
		"neural network",
	}
}

// Config controls the trending-page scraper.
type Config struct {
	TrendingURL string
	Keywords    []string
	UserAgent   string
	Timeout     time.Duration
}

// Scraper fetches and filters the trending listing.
type Scraper struct {
	cfg    Config
	logger *zap.Logger
}

// NewScraper builds a Scraper. Keywords default to DefaultKeywords when
// unset.
func NewScraper(cfg Config, logger *zap.Logger) (*Scraper, error) {
	if cfg.TrendingURL == "" {
		return nil, fmt.Errorf("discovery.trending_url is required")
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultKeywords()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{cfg: cfg, logger: logger}, nil
}

// Discover fetches the trending page once and returns the keyword-matching
// candidates in page order. A fetch failure is an error; an empty listing is
// not.
func (s *Scraper) Discover(ctx context.Context) ([]Candidate, error) {
	opts := []colly.CollectorOption{}
	if s.cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(s.cfg.UserAgent))
	}
	collector := colly.NewCollector(opts...)
	collector.SetRequestTimeout(s.cfg.Timeout)

	var (
		candidates []Candidate
		rows       int
		fetchErr   error
	)

	collector.OnHTML("article.Box-row", func(e *colly.HTMLElement) {
		rows++
		href := e.ChildAttr("h2 a", "href")
		if href == "" {
			s.logger.Debug("trending row without title link, skipping")
			return
		}
		name := strings.Trim(href, "/")
		repoURL := e.Request.AbsoluteURL(href)
		description := strings.TrimSpace(e.ChildText("p"))

		if !s.matches(name, description) {
			return
		}
		candidates = append(candidates, Candidate{
			Name:        name,
			URL:         repoURL,
			Description: description,
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch trending page (status %d): %w", status, err)
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discovery canceled: %w", err)
	}
	if err := collector.Visit(s.cfg.TrendingURL); err != nil {
		return nil, fmt.Errorf("visit trending page: %w", err)
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if rows == 0 {
		s.logger.Warn("no repository rows found on trending page; markup may have changed",
			zap.String("url", s.cfg.TrendingURL))
	}
	s.logger.Info("trending page scanned",
		zap.Int("rows", rows),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

func (s *Scraper) matches(name, description string) bool {
	for _, kw := range s.cfg.Keywords {
		if containsLower(description, kw) || containsLower(name, kw) {
			return true
		}
	}
	return false
}

func containsLower(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

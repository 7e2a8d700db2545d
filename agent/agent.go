package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"agent_backend/cache"
	"agent_backend/completion"
	"agent_backend/store"
)

// SystemPrompt is the fixed system turn sent with every inference call.
const SystemPrompt = "You are a helpful and concise AI assistant."

// cacheTTL applies to every cache entry.
const cacheTTL = time.Hour

type Source string

const (
	SourceCache     Source = "cache"
	SourceInference Source = "inference"
)

// Query is one incoming conversational request.
type Query struct {
	UserID int64
	Text   string
}

// Response is the resolved answer plus its provenance and elapsed time.
type Response struct {
	Text    string
	Source  Source
	Latency float64
}

// Agent resolves queries through a fixed pipeline: cache lookup,
// inference on a miss with best-effort write-through, then a synchronous
// append to the interaction log. A request only succeeds when it was
// both answered and logged.
type Agent struct {
	cache      cache.Service
	completion completion.Service
	log        store.Store
	logger     zerolog.Logger
}

func New(cacheSvc cache.Service, completionSvc completion.Service, logStore store.Store, logger zerolog.Logger) *Agent {
	return &Agent{
		cache:      cacheSvc,
		completion: completionSvc,
		log:        logStore,
		logger:     logger,
	}
}

// Resolve runs the pipeline for one query. Cache errors are swallowed
// (a broken cache degrades to a miss, never a failure); inference and
// log errors are terminal for the request. No retries anywhere.
func (a *Agent) Resolve(ctx context.Context, q Query) (Response, error) {
	start := time.Now()

	text, source, err := a.answer(ctx, q.Text)
	if err != nil {
		return Response{}, err
	}

	rec := &store.Interaction{
		UserID:     q.UserID,
		InputText:  q.Text,
		AIResponse: text,
		Source:     string(source),
	}
	if err := a.log.Append(ctx, rec); err != nil {
		return Response{}, fmt.Errorf("fail to log interaction: %w", err)
	}

	return Response{
		Text:    text,
		Source:  source,
		Latency: time.Since(start).Seconds(),
	}, nil
}

// answer produces the response text and its provenance. The cache key
// is the raw query text: near-duplicate wording is a miss, by contract.
func (a *Agent) answer(ctx context.Context, text string) (string, Source, error) {
	cached, hit, err := a.cache.Get(ctx, text)
	if err != nil {
		a.logger.Warn().Err(err).Msg("cache lookup failed, treating as miss")
	}
	if hit {
		a.logger.Debug().Str("query", truncate(text)).Msg("cache hit")
		return cached, SourceCache, nil
	}

	a.logger.Debug().Str("query", truncate(text)).Msg("cache miss, calling inference")
	answer, err := a.completion.Complete(ctx, SystemPrompt, text)
	if err != nil {
		return "", "", fmt.Errorf("fail to complete query: %w", err)
	}

	if err := a.cache.Set(ctx, text, answer, cacheTTL); err != nil {
		a.logger.Warn().Err(err).Msg("cache write failed, skipping")
	}
	return answer, SourceInference, nil
}

func truncate(s string) string {
	if len(s) > 20 {
		return s[:20] + "..."
	}
	return s
}

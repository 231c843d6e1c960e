package scoring

import (
	"context"

	"go.uber.org/zap"
)

// Engine is the scoring entry point used by handlers and the response
// service. It consults the cache, then the remote grader if one is
// configured, and always lands on the local heuristic when the remote path
// fails. Callers never see a scoring error.
type Engine struct {
	grader Grader
	cache  Cache
	logger *zap.Logger
}

// NewEngine builds an engine. grader may be nil, which pins every call to
// the local heuristic.
func NewEngine(grader Grader, cache Cache, logger *zap.Logger) *Engine {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Engine{grader: grader, cache: cache, logger: logger}
}

// Score grades one free-text answer. Identical input yields an identical
// result: cache hits return the original result unchanged.
func (e *Engine) Score(ctx context.Context, in Input) Result {
	key := CacheKey(in.QuestionID, in.Text)
	if result, ok := e.cache.Get(ctx, key); ok {
		return result
	}

	if e.grader != nil {
		result, err := e.grader.Grade(ctx, in)
		if err == nil {
			result = Clamp(result)
			e.cache.Set(ctx, key, result)
			return result
		}
		if e.logger != nil {
			e.logger.Warn("remote scoring failed, using heuristic fallback",
				zap.String("questionId", in.QuestionID),
				zap.Error(err),
			)
		}
	}

	result := Heuristic(in)
	e.cache.Set(ctx, key, result)
	return result
}

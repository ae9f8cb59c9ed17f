package analysis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/karnakar5511/query-insights/internal/application"
	"github.com/karnakar5511/query-insights/internal/domain/ai"
	domain "github.com/karnakar5511/query-insights/internal/domain/analysis"
	"github.com/karnakar5511/query-insights/internal/domain/sentiment"
)

// ScoreFunc computes the sentiment polarity and label of a text.
type ScoreFunc func(text string) (float64, sentiment.Label)

// Service implements the ingestion use-cases: forward a query upstream,
// score its sentiment and persist the interaction as one record.
// Safe for concurrent use; it holds no mutable state.
type Service struct {
	Repo    domain.Repository
	AI      ai.Generator
	Archive ai.Archive // optional raw payload retention, may be nil
	Clock   application.Clock
	Score   ScoreFunc // nil means sentiment.Score
}

type AnalyzeResult struct {
	UserQuery     string `json:"user_query"`
	GeneratedText string `json:"generated_text"`
}

type SentimentResult struct {
	Text           string          `json:"text"`
	SentimentScore float64         `json:"sentiment_score"`
	Sentiment      sentiment.Label `json:"sentiment"`
}

// Analyze runs the full pipeline for one query.
//
// An upstream failure aborts everything: nothing is scored, nothing is
// stored. A store failure after a successful generation is still fatal to
// the request; the completed upstream call is not rolled back.
func (s *Service) Analyze(ctx context.Context, userQuery string) (AnalyzeResult, error) {
	// No input validation: empty queries are accepted and forwarded as-is.
	gen, err := s.AI.Generate(ctx, userQuery)
	if err != nil {
		return AnalyzeResult{}, err
	}

	// Sentiment is scored on the query text, not on the generated text.
	score, label := s.scoreText(userQuery)

	rec := &domain.Record{
		ID:             domain.RecordID(uuid.New().String()),
		UserQuery:      userQuery,
		GeneratedText:  gen.Text,
		SentimentScore: score,
		Sentiment:      label,
		Timestamp:      domain.FormatTimestamp(s.now()),
	}
	if err := s.Repo.Append(ctx, rec); err != nil {
		return AnalyzeResult{}, fmt.Errorf("append analysis record: %w", err)
	}

	// Best-effort: a failed archive never fails the request.
	if s.Archive != nil && len(gen.Raw) > 0 {
		if _, err := s.Archive.Store(ctx, string(rec.ID), gen.Raw); err != nil {
			log.Printf("archive payload for record %s: %v", rec.ID, err)
		}
	}

	return AnalyzeResult{UserQuery: userQuery, GeneratedText: gen.Text}, nil
}

// ScoreSentiment is the standalone sentiment endpoint's use-case: a pure
// pass-through to the scorer, no store interaction, never fails.
func (s *Service) ScoreSentiment(text string) SentimentResult {
	score, label := s.scoreText(text)
	return SentimentResult{Text: text, SentimentScore: score, Sentiment: label}
}

func (s *Service) scoreText(text string) (float64, sentiment.Label) {
	if s.Score != nil {
		return s.Score(text)
	}
	return sentiment.Score(text)
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now()
	}
	return time.Now()
}

package insights

import (
	"context"

	domain "github.com/karnakar5511/query-insights/internal/domain/analysis"
)

// Service implements the aggregation views. Each call re-scans the full
// record store: no caching, no incremental state.
type Service struct {
	Repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{Repo: repo}
}

type TrendPoint struct {
	Date       string `json:"date"`
	QueryCount int    `json:"query_count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type EngagementCount struct {
	UserQuery string `json:"user_query"`
	Count     int    `json:"count"`
}

// QueryTrends counts records per date prefix of the stored timestamp.
// Records without a timestamp are skipped.
func (s *Service) QueryTrends(ctx context.Context) ([]TrendPoint, error) {
	records, err := s.Repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	dated := records[:0:0]
	for _, r := range records {
		if r.Timestamp != "" {
			dated = append(dated, r)
		}
	}
	buckets := groupCount(dated, func(r domain.Record) string {
		return domain.DateOf(r.Timestamp)
	})

	out := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, TrendPoint{Date: b.Key, QueryCount: b.Count})
	}
	return out, nil
}

// CategoryDistribution counts records per sentiment label.
func (s *Service) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	records, err := s.Repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	buckets := groupCount(records, func(r domain.Record) string {
		return string(r.Sentiment)
	})

	out := make([]CategoryCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, CategoryCount{Category: b.Key, Count: b.Count})
	}
	return out, nil
}

// UserEngagement counts records per exact query text: case-sensitive,
// whitespace-sensitive, no normalization.
func (s *Service) UserEngagement(ctx context.Context) ([]EngagementCount, error) {
	records, err := s.Repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	buckets := groupCount(records, func(r domain.Record) string {
		return r.UserQuery
	})

	out := make([]EngagementCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, EngagementCount{UserQuery: b.Key, Count: b.Count})
	}
	return out, nil
}

type bucket struct {
	Key   string
	Count int
}

// groupCount tallies items by key in one linear scan. Output order is the
// order keys are first seen, deliberately not sorted.
func groupCount[T any](items []T, key func(T) string) []bucket {
	counts := make(map[string]int, len(items))
	var order []string
	for _, it := range items {
		k := key(it)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]bucket, 0, len(order))
	for _, k := range order {
		out = append(out, bucket{Key: k, Count: counts[k]})
	}
	return out
}

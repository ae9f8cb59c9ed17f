package analysis

import (
	"strings"
	"time"

	"github.com/karnakar5511/query-insights/internal/domain/sentiment"
)

// RecordID identifier type
type RecordID string

// TimestampLayout is the stored form of a record timestamp: UTC ISO-8601
// with the date joined to the time by "T". Kept textual so the date prefix
// is extractable by substring splitting, no date parsing needed.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Record is one ingested interaction. Records are append-only and never
// mutated; every field is populated before the record is persisted.
type Record struct {
	ID             RecordID        `json:"id"`
	UserQuery      string          `json:"user_query"`
	GeneratedText  string          `json:"generated_text"`
	SentimentScore float64         `json:"sentiment_score"`
	Sentiment      sentiment.Label `json:"sentiment"`
	Timestamp      string          `json:"timestamp"`
}

// FormatTimestamp renders an instant in the stored timestamp form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DateOf extracts the date prefix of a stored timestamp.
func DateOf(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}

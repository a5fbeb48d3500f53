package domain

// Kind classifies an insight for presentation purposes.
type Kind string

const (
	KindPattern        Kind = "pattern"
	KindRecommendation Kind = "recommendation"
	KindAchievement    Kind = "achievement"
	KindOptimization   Kind = "optimization"
)

// IsValid checks if the kind is one of the allowed values.
func (k Kind) IsValid() bool {
	switch k {
	case KindPattern, KindRecommendation, KindAchievement, KindOptimization:
		return true
	}
	return false
}

// Stable insight identifiers. Each rule contributes at most one insight
// per generation pass, so the identifier doubles as a deduplication key
// for callers that render insights across refreshes.
const (
	InsightCategoryConcentration = "category_concentration"
	InsightEstimationAccuracy    = "estimation_accuracy"
	InsightStreakAchievement     = "streak_achievement"
	InsightDailyMomentum         = "daily_momentum"
)

// Insight is a derived observation computed from task history. Insights
// are never persisted; they are recomputed on demand from the current
// state of the task store.
type Insight struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Confidence  float64
	Actionable  bool

	// Context data supporting the insight
	DataContext map[string]any
}

// NewInsight creates a new insight.
func NewInsight(id string, kind Kind, title, description string, confidence float64, actionable bool) Insight {
	return Insight{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Description: description,
		Confidence:  confidence,
		Actionable:  actionable,
		DataContext: make(map[string]any),
	}
}

// SetDataContext sets context data for the insight.
func (i *Insight) SetDataContext(key string, value any) {
	if i.DataContext == nil {
		i.DataContext = make(map[string]any)
	}
	i.DataContext[key] = value
}

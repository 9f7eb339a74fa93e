package ports

import "context"

// StatsTotals is the moderator-level overview.
type StatsTotals struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	TotalPosts    int64 `json:"total_posts"`
	TotalComments int64 `json:"total_comments"`
}

// DetailedStats is the admin-level breakdown.
type DetailedStats struct {
	UsersByRole        map[string]int64 `json:"users_by_role"`
	AvgCommentsPerPost float64          `json:"avg_comments_per_post"`
	AvgPostsPerUser    float64          `json:"avg_posts_per_user"`
}

// StatsRepository runs the aggregate queries behind the stats endpoints.
type StatsRepository interface {
	Totals(ctx context.Context) (*StatsTotals, error)
	Detailed(ctx context.Context) (*DetailedStats, error)
}

// StatsCache fronts the stats repository with a short-lived cache. A cache
// failure is never fatal: the caller falls through to the repository.
type StatsCache interface {
	GetTotals(ctx context.Context) (*StatsTotals, bool)
	SetTotals(ctx context.Context, t *StatsTotals)
	GetDetailed(ctx context.Context) (*DetailedStats, bool)
	SetDetailed(ctx context.Context, d *DetailedStats)
}

// StatsService serves the stats endpoints. Role gating happens at the router.
type StatsService interface {
	Totals(ctx context.Context) (*StatsTotals, error)
	Detailed(ctx context.Context) (*DetailedStats, error)
}

package gameweek

import "context"

// PlayerStats is the live per-gameweek line of one player.
type PlayerStats struct {
	PlayerID    int64
	TotalPoints int64
	Minutes     int
	Goals       int
	Assists     int
	CleanSheets int
	Bonus       int
}

// StatsProvider is the read-only live stats oracle.
type StatsProvider interface {
	LiveStats(ctx context.Context, gw int) (map[int64]PlayerStats, error)
}

// Calendar exposes the season's gameweeks and fixture counts.
type Calendar interface {
	Events(ctx context.Context) ([]Info, error)
	FixtureCount(ctx context.Context, gw int) (int, error)
}

// SubmissionRepository stores the latest submission per team and gameweek plus
// an append-only history.
type SubmissionRepository interface {
	Get(ctx context.Context, teamID int64, gw int) (Submission, bool, error)
	// GetLatestBefore returns the team's most recent submission for a gameweek
	// lower than gw.
	GetLatestBefore(ctx context.Context, teamID int64, gw int) (Submission, bool, error)
	ListByGameweek(ctx context.Context, gw int) ([]Submission, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Submission, error)
	// Save upserts the latest value and appends a history entry in one unit.
	Save(ctx context.Context, s Submission) error
	ListHistory(ctx context.Context, teamID int64, gw int) ([]HistoryEntry, error)
}

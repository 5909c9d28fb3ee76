package scoring

import (
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
)

// GameweekPoints is the persisted score of one team for one gameweek.
type GameweekPoints struct {
	TeamID             int64
	Gameweek           int
	BasePoints         int64
	FinalPoints        int64
	Chip               chip.Chip
	EffectiveCaptainID int64
	Substitutions      []lineup.Substitution
	Rank               int
	CalculatedAt       time.Time
}

// AssignRanks orders items by FinalPoints descending and sets Rank to the
// position in that order. Ties keep input order.
func AssignRanks(items []GameweekPoints) []GameweekPoints {
	out := make([]GameweekPoints, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalPoints > out[j].FinalPoints
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// HistoryRow is one gameweek of a team's season with a running total.
type HistoryRow struct {
	GameweekPoints
	CumulativePoints int64
}

func BuildHistory(items []GameweekPoints) []HistoryRow {
	sorted := make([]GameweekPoints, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Gameweek < sorted[j].Gameweek
	})

	out := make([]HistoryRow, 0, len(sorted))
	var total int64
	for _, item := range sorted {
		total += item.FinalPoints
		out = append(out, HistoryRow{GameweekPoints: item, CumulativePoints: total})
	}
	return out
}

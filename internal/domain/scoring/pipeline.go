package scoring

import (
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/shopspring/decimal"
)

var (
	one             = decimal.NewFromInt(1)
	two             = decimal.NewFromInt(2)
	three           = decimal.NewFromInt(3)
	clubMultiplier  = decimal.RequireFromString("1.5")
	captainMult     = two
	tripleCaptMult  = three
	positionChipMul = two
	brahmasthraMult = three
)

// Input is one team's submission for a gameweek joined with live data.
type Input struct {
	Starting         []int64
	Bench            []int64
	CaptainID        int64
	ViceCaptainID    int64
	ClubMultiplierID int64
	Chip             chip.Chip
	Players          map[int64]player.Player
	Stats            map[int64]gameweek.PlayerStats
}

// PlayerScore is one counted player's contribution.
type PlayerScore struct {
	PlayerID         int64
	Position         player.Position
	Minutes          int
	BasePoints       int64
	Multiplier       decimal.Decimal
	Points           int64
	Bench            bool
	EffectiveCaptain bool
	ClubBonus        bool
}

type Result struct {
	BasePoints         int64
	SubtotalPoints     int64
	FinalPoints        int64
	Chip               chip.Chip
	EffectiveCaptainID int64
	Starting           []int64
	Bench              []int64
	Substitutions      []lineup.Substitution
	Players            []PlayerScore
}

// Calculate runs auto-substitution and then applies multipliers in a fixed
// order: captaincy, position chip, club. Each player's points are floored to
// an integer before summing; the global chip applies to the sum.
func Calculate(in Input) Result {
	positions := make(map[int64]player.Position, len(in.Players))
	for id, p := range in.Players {
		positions[id] = p.Position
	}
	minutes := make(map[int64]int, len(in.Stats))
	for id, s := range in.Stats {
		minutes[id] = s.Minutes
	}

	subs := lineup.AutoSubstitute(lineup.SubstitutionInput{
		Starting:   in.Starting,
		Bench:      in.Bench,
		Positions:  positions,
		Minutes:    minutes,
		BenchBoost: in.Chip == chip.BenchBoost,
	})

	effectiveCaptain := in.CaptainID
	if minutes[in.CaptainID] == 0 {
		effectiveCaptain = in.ViceCaptainID
	}

	result := Result{
		Chip:               in.Chip,
		EffectiveCaptainID: effectiveCaptain,
		Starting:           subs.Starting,
		Bench:              subs.Bench,
		Substitutions:      subs.Substitutions,
		Players:            make([]PlayerScore, 0, len(subs.Starting)+len(subs.Bench)),
	}

	var subtotal int64
	for _, id := range subs.Starting {
		score := starterScore(in, id, effectiveCaptain)
		result.BasePoints += score.BasePoints
		subtotal += score.Points
		result.Players = append(result.Players, score)
	}
	if in.Chip == chip.BenchBoost {
		for _, id := range subs.Bench {
			score := benchScore(in, id)
			result.BasePoints += score.BasePoints
			subtotal += score.Points
			result.Players = append(result.Players, score)
		}
	}

	result.SubtotalPoints = subtotal
	result.FinalPoints = applyGlobalChip(in.Chip, subtotal)
	return result
}

func starterScore(in Input, playerID, effectiveCaptain int64) PlayerScore {
	p := in.Players[playerID]
	stats := in.Stats[playerID]
	multiplier := one

	isCaptain := playerID == effectiveCaptain
	if isCaptain {
		if in.Chip == chip.TripleCaptain {
			multiplier = multiplier.Mul(tripleCaptMult)
		} else {
			multiplier = multiplier.Mul(captainMult)
		}
	}

	switch in.Chip {
	case chip.AttackChip:
		if p.Position == player.PositionMidfielder || p.Position == player.PositionForward {
			multiplier = multiplier.Mul(positionChipMul)
		}
	case chip.ParkTheBus:
		if p.Position == player.PositionGoalkeeper || p.Position == player.PositionDefender {
			multiplier = multiplier.Mul(positionChipMul)
		}
	case chip.Brahmasthra:
		multiplier = multiplier.Mul(brahmasthraMult)
	}

	clubBonus := in.ClubMultiplierID > 0 && p.ClubID == in.ClubMultiplierID
	if clubBonus {
		multiplier = multiplier.Mul(clubMultiplier)
	}

	return PlayerScore{
		PlayerID:         playerID,
		Position:         p.Position,
		Minutes:          stats.Minutes,
		BasePoints:       stats.TotalPoints,
		Multiplier:       multiplier,
		Points:           applyMultiplier(stats.TotalPoints, multiplier),
		EffectiveCaptain: isCaptain,
		ClubBonus:        clubBonus,
	}
}

func benchScore(in Input, playerID int64) PlayerScore {
	p := in.Players[playerID]
	stats := in.Stats[playerID]
	multiplier := one

	clubBonus := in.ClubMultiplierID > 0 && p.ClubID == in.ClubMultiplierID
	if clubBonus {
		multiplier = multiplier.Mul(clubMultiplier)
	}

	return PlayerScore{
		PlayerID:   playerID,
		Position:   p.Position,
		Minutes:    stats.Minutes,
		BasePoints: stats.TotalPoints,
		Multiplier: multiplier,
		Points:     applyMultiplier(stats.TotalPoints, multiplier),
		Bench:      true,
		ClubBonus:  clubBonus,
	}
}

func applyMultiplier(base int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(base).Mul(multiplier).Floor().IntPart()
}

func applyGlobalChip(c chip.Chip, subtotal int64) int64 {
	total := decimal.NewFromInt(subtotal)
	switch c {
	case chip.DoubleUp:
		return total.Mul(two).IntPart()
	case chip.NegativeChip:
		return total.Div(two).Floor().IntPart()
	default:
		return subtotal
	}
}

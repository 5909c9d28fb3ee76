package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/stretchr/testify/require"
)

func TestSubstitutionsRoundTrip(t *testing.T) {
	empty, err := encodeSubstitutions(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", empty)

	subs := []lineup.Substitution{
		{Out: 328, In: 47, Reason: lineup.ReasonDidNotPlay},
		{Out: 1, In: 3, Reason: lineup.ReasonGoalkeeper},
	}
	raw, err := encodeSubstitutions(subs)
	require.NoError(t, err)

	decoded, err := decodeSubstitutions(raw)
	require.NoError(t, err)
	require.Equal(t, subs, decoded)

	decoded, err = decodeSubstitutions("")
	require.NoError(t, err)
	require.Empty(t, decoded)

	_, err = decodeSubstitutions("{not json")
	require.Error(t, err)
}

func TestAuctionFromRow(t *testing.T) {
	createdAt := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	completedAt := createdAt.Add(2 * time.Minute)

	got := auctionFromRow(auctionTableModel{
		ID:              7,
		DraftID:         1,
		Kind:            "player",
		SubjectID:       328,
		CurrentBid:      45,
		CurrentBidderID: 3,
		Status:          "completed",
		StartedBy:       2,
		SellingStage:    "",
		BidCount:        6,
		RestartCount:    1,
		Version:         9,
		CreatedAt:       createdAt,
		UpdatedAt:       completedAt,
		CompletedAt:     sql.NullTime{Time: completedAt, Valid: true},
	})

	require.Equal(t, squad.KindPlayer, got.Kind)
	require.Equal(t, auction.StatusCompleted, got.Status)
	require.Equal(t, auction.SellingStageNone, got.SellingStage)
	require.NotNil(t, got.CompletedAt)
	require.True(t, got.CompletedAt.Equal(completedAt))
	require.False(t, got.IsActive())
	require.True(t, got.HasBidder())
	require.True(t, got.WasRestarted())
}

func TestSubmissionRowRoundTrip(t *testing.T) {
	sub := gameweek.Submission{
		TeamID:           1,
		Gameweek:         4,
		Starting:         []int64{1, 3, 201, 330, 366, 17, 182, 328, 372, 355, 447},
		Bench:            []int64{47, 311, 60, 58},
		CaptainID:        328,
		ViceCaptainID:    355,
		ClubMultiplierID: 12,
		Chip:             chip.BenchBoost,
		SubmittedAt:      time.Date(2025, 9, 13, 10, 0, 0, 0, time.UTC),
		Compliance:       gameweek.ComplianceGracePeriod,
	}

	row := submissionToRow(sub)
	require.Equal(t, []int64(sub.Starting), []int64(row.StartingIDs))

	got := submissionFromRow(row)
	require.Equal(t, sub, got)

	got.Starting[0] = 99
	require.Equal(t, int64(1), row.StartingIDs[0])
}

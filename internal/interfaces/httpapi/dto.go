package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/lineup"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
	"github.com/riskibarqy/fantasy-auction/internal/usecase"
)

type teamDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Budget   int64  `json:"budget"`
	IsAdmin  bool   `json:"isAdmin"`
}

type playerDTO struct {
	ID          int64  `json:"id"`
	WebName     string `json:"webName"`
	FullName    string `json:"fullName"`
	Position    string `json:"position"`
	ClubID      int64  `json:"clubId"`
	ClubName    string `json:"clubName,omitempty"`
	Price       int64  `json:"price"`
	Status      string `json:"status,omitempty"`
	OwnerTeamID int64  `json:"ownerTeamId,omitempty"`
}

type clubDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ShortName   string `json:"shortName"`
	OwnerTeamID int64  `json:"ownerTeamId,omitempty"`
}

type draftDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type draftOrderEntryDTO struct {
	Position  int    `json:"position"`
	TeamID    int64  `json:"teamId"`
	Round     int    `json:"round"`
	Direction string `json:"direction"`
}

type draftStateDTO struct {
	Draft           draftDTO             `json:"draft"`
	Active          bool                 `json:"active"`
	CurrentPosition int                  `json:"currentPosition"`
	CurrentTeamID   int64                `json:"currentTeamId"`
	TotalPositions  int                  `json:"totalPositions"`
	StartedAt       *time.Time           `json:"startedAt,omitempty"`
	EndedAt         *time.Time           `json:"endedAt,omitempty"`
	Order           []draftOrderEntryDTO `json:"order"`
}

type advanceDTO struct {
	HasNext   bool    `json:"hasNext"`
	Completed bool    `json:"completed"`
	Position  int     `json:"position"`
	TeamID    int64   `json:"teamId"`
	Skipped   []int64 `json:"skipped,omitempty"`
}

type auctionDTO struct {
	ID              int64      `json:"id"`
	DraftID         int64      `json:"draftId"`
	Kind            string     `json:"kind"`
	SubjectID       int64      `json:"subjectId"`
	CurrentBid      int64      `json:"currentBid"`
	CurrentBidderID int64      `json:"currentBidderId"`
	Status          string     `json:"status"`
	StartedBy       int64      `json:"startedBy"`
	SellingStage    string     `json:"sellingStage,omitempty"`
	WaitRequestedBy int64      `json:"waitRequestedBy,omitempty"`
	BidCount        int        `json:"bidCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

type bidDTO struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"teamId"`
	Amount    int64     `json:"amount"`
	IsAuto    bool      `json:"isAuto"`
	CreatedAt time.Time `json:"createdAt"`
}

type auctionViewDTO struct {
	Auction       auctionDTO `json:"auction"`
	Player        *playerDTO `json:"player,omitempty"`
	Club          *clubDTO   `json:"club,omitempty"`
	CurrentBidder *teamDTO   `json:"currentBidder,omitempty"`
	Bids          []bidDTO   `json:"bids"`
}

type completeAuctionDTO struct {
	Auction   auctionDTO `json:"auction"`
	TeamID    int64      `json:"teamId"`
	PricePaid int64      `json:"pricePaid"`
	Draft     advanceDTO `json:"draft"`
}

type breakDTO struct {
	OnBreak   bool       `json:"onBreak"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	StartedBy int64      `json:"startedBy,omitempty"`
}

type instructionDTO struct {
	PlayerID          int64 `json:"playerId" validate:"required,gt=0"`
	MaxBid            int64 `json:"maxBid" validate:"required,gt=0"`
	OnlySellingStage  bool  `json:"onlySellingStage"`
	NeverSecondBidder bool  `json:"neverSecondBidder"`
	SkipIfClubOwned   bool  `json:"skipIfClubOwned"`
}

type autoBidDTO struct {
	TeamID        int64            `json:"teamId"`
	Enabled       bool             `json:"enabled"`
	Instructions  []instructionDTO `json:"instructions"`
	MaxAllowedBid int64            `json:"maxAllowedBid"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type autoBidStatusDTO struct {
	TeamID           int64 `json:"teamId"`
	Enabled          bool  `json:"enabled"`
	InstructionCount int   `json:"instructionCount"`
	Budget           int64 `json:"budget"`
	SquadSize        int   `json:"squadSize"`
	MaxAllowedBid    int64 `json:"maxAllowedBid"`
	Running          bool  `json:"running"`
	OnBreak          bool  `json:"onBreak"`
}

type squadPlayerDTO struct {
	playerDTO
	PricePaid int64 `json:"pricePaid"`
}

type squadClubDTO struct {
	clubDTO
	PricePaid int64 `json:"pricePaid"`
}

type squadDTO struct {
	Team           teamDTO          `json:"team"`
	Players        []squadPlayerDTO `json:"players"`
	Clubs          []squadClubDTO   `json:"clubs"`
	TotalSpent     int64            `json:"totalSpent"`
	SlotsRemaining int              `json:"slotsRemaining"`
	MaxAllowedBid  int64            `json:"maxAllowedBid"`
}

type gameweekDTO struct {
	Number        int        `json:"number"`
	Name          string     `json:"name,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	GraceDeadline *time.Time `json:"graceDeadline,omitempty"`
	Type          string     `json:"type"`
	MatchCount    int        `json:"matchCount"`
	IsCurrent     bool       `json:"isCurrent"`
	IsNext        bool       `json:"isNext"`
	Finished      bool       `json:"finished"`
}

type submissionDTO struct {
	TeamID           int64     `json:"teamId"`
	Gameweek         int       `json:"gameweek"`
	Starting         []int64   `json:"starting"`
	Bench            []int64   `json:"bench"`
	CaptainID        int64     `json:"captainId"`
	ViceCaptainID    int64     `json:"viceCaptainId"`
	ClubMultiplierID int64     `json:"clubMultiplierId,omitempty"`
	Chip             string    `json:"chip,omitempty"`
	SubmittedAt      time.Time `json:"submittedAt"`
	Compliance       string    `json:"compliance,omitempty"`
	IsDefault        bool      `json:"isDefault"`
}

type submissionHistoryDTO struct {
	ID int64 `json:"id"`
	submissionDTO
}

type chipStatusDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Used         bool   `json:"used"`
	GameweekUsed int    `json:"gameweekUsed,omitempty"`
	Planned      bool   `json:"planned"`
}

type substitutionDTO struct {
	Out    int64  `json:"out"`
	In     int64  `json:"in"`
	Reason string `json:"reason"`
}

type pointsDTO struct {
	TeamID             int64             `json:"teamId"`
	Gameweek           int               `json:"gameweek"`
	BasePoints         int64             `json:"basePoints"`
	FinalPoints        int64             `json:"finalPoints"`
	Chip               string            `json:"chip,omitempty"`
	EffectiveCaptainID int64             `json:"effectiveCaptainId"`
	Substitutions      []substitutionDTO `json:"substitutions"`
	Rank               int               `json:"rank,omitempty"`
	CalculatedAt       time.Time         `json:"calculatedAt"`
}

type historyRowDTO struct {
	pointsDTO
	CumulativePoints int64 `json:"cumulativePoints"`
}

type playerScoreDTO struct {
	PlayerID         int64  `json:"playerId"`
	Position         string `json:"position"`
	Minutes          int    `json:"minutes"`
	BasePoints       int64  `json:"basePoints"`
	Multiplier       string `json:"multiplier"`
	Points           int64  `json:"points"`
	Bench            bool   `json:"bench"`
	EffectiveCaptain bool   `json:"effectiveCaptain"`
	ClubBonus        bool   `json:"clubBonus"`
}

type breakdownDTO struct {
	TeamID             int64             `json:"teamId"`
	Gameweek           int               `json:"gameweek"`
	BasePoints         int64             `json:"basePoints"`
	SubtotalPoints     int64             `json:"subtotalPoints"`
	FinalPoints        int64             `json:"finalPoints"`
	Chip               string            `json:"chip,omitempty"`
	EffectiveCaptainID int64             `json:"effectiveCaptainId"`
	Starting           []int64           `json:"starting"`
	Bench              []int64           `json:"bench"`
	Substitutions      []substitutionDTO `json:"substitutions"`
	Players            []playerScoreDTO  `json:"players"`
}

type leaderboardRowDTO struct {
	Rank        int    `json:"rank"`
	TeamID      int64  `json:"teamId"`
	TeamName    string `json:"teamName"`
	Gameweek    int    `json:"gameweek,omitempty"`
	Points      int64  `json:"points"`
	Chip        string `json:"chip,omitempty"`
	Gameweeks   int    `json:"gameweeks,omitempty"`
	CaptainID   int64  `json:"captainId,omitempty"`
	Substituted int    `json:"substituted,omitempty"`
}

type calculateGameweekDTO struct {
	Gameweek   int         `json:"gameweek"`
	Calculated int         `json:"calculated"`
	Skipped    int         `json:"skipped"`
	Failed     int         `json:"failed"`
	Points     []pointsDTO `json:"points"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:       t.ID,
		Name:     t.Name,
		Username: t.Username,
		Budget:   t.Budget,
		IsAdmin:  t.IsAdmin,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:       p.ID,
		WebName:  p.WebName,
		FullName: p.FullName,
		Position: string(p.Position),
		ClubID:   p.ClubID,
		Price:    p.Price,
		Status:   p.Status,
	}
}

func clubToDTO(c club.Club) clubDTO {
	return clubDTO{
		ID:        c.ID,
		Name:      c.Name,
		ShortName: c.ShortName,
	}
}

func draftToDTO(d draft.Draft) draftDTO {
	return draftDTO{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

func orderToDTO(entries []draft.OrderEntry) []draftOrderEntryDTO {
	out := make([]draftOrderEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, draftOrderEntryDTO{
			Position:  e.Position,
			TeamID:    e.TeamID,
			Round:     e.Round,
			Direction: string(e.Direction),
		})
	}
	return out
}

func draftViewToDTO(v usecase.DraftView) draftStateDTO {
	return draftStateDTO{
		Draft:           draftToDTO(v.Draft),
		Active:          v.State.Active,
		CurrentPosition: v.State.CurrentPosition,
		CurrentTeamID:   v.State.CurrentTeamID,
		TotalPositions:  v.State.TotalPositions,
		StartedAt:       v.State.StartedAt,
		EndedAt:         v.State.EndedAt,
		Order:           orderToDTO(v.Order),
	}
}

func advanceToDTO(r draft.AdvanceResult) advanceDTO {
	return advanceDTO{
		HasNext:   r.HasNext,
		Completed: r.Completed,
		Position:  r.Position,
		TeamID:    r.TeamID,
		Skipped:   r.Skipped,
	}
}

func auctionToDTO(a auction.Auction) auctionDTO {
	return auctionDTO{
		ID:              a.ID,
		DraftID:         a.DraftID,
		Kind:            string(a.Kind),
		SubjectID:       a.SubjectID,
		CurrentBid:      a.CurrentBid,
		CurrentBidderID: a.CurrentBidderID,
		Status:          string(a.Status),
		StartedBy:       a.StartedBy,
		SellingStage:    string(a.SellingStage),
		WaitRequestedBy: a.WaitRequestedBy,
		BidCount:        a.BidCount,
		CreatedAt:       a.CreatedAt,
		CompletedAt:     a.CompletedAt,
	}
}

func bidsToDTO(bids []auction.Bid) []bidDTO {
	out := make([]bidDTO, 0, len(bids))
	for _, b := range bids {
		out = append(out, bidDTO{
			ID:        b.ID,
			TeamID:    b.TeamID,
			Amount:    b.Amount,
			IsAuto:    b.IsAuto,
			CreatedAt: b.CreatedAt,
		})
	}
	return out
}

func auctionViewToDTO(v usecase.AuctionView) auctionViewDTO {
	out := auctionViewDTO{
		Auction: auctionToDTO(v.Auction),
		Bids:    bidsToDTO(v.Bids),
	}
	if v.Player != nil {
		p := playerToDTO(*v.Player)
		out.Player = &p
	}
	if v.Club != nil {
		c := clubToDTO(*v.Club)
		out.Club = &c
	}
	if v.CurrentBidder != nil {
		t := teamToDTO(*v.CurrentBidder)
		out.CurrentBidder = &t
	}
	return out
}

func breakToDTO(s usecase.BreakStatus) breakDTO {
	return breakDTO{
		OnBreak:   s.OnBreak,
		StartedAt: s.StartedAt,
		StartedBy: s.StartedBy,
	}
}

func instructionsToDomain(items []instructionDTO) []autobid.Instruction {
	out := make([]autobid.Instruction, 0, len(items))
	for _, in := range items {
		out = append(out, autobid.Instruction{
			PlayerID:          in.PlayerID,
			MaxBid:            in.MaxBid,
			OnlySellingStage:  in.OnlySellingStage,
			NeverSecondBidder: in.NeverSecondBidder,
			SkipIfClubOwned:   in.SkipIfClubOwned,
		})
	}
	return out
}

func autoBidToDTO(v usecase.AutoBidView) autoBidDTO {
	instructions := make([]instructionDTO, 0, len(v.Config.Instructions))
	for _, in := range v.Config.Instructions {
		instructions = append(instructions, instructionDTO{
			PlayerID:          in.PlayerID,
			MaxBid:            in.MaxBid,
			OnlySellingStage:  in.OnlySellingStage,
			NeverSecondBidder: in.NeverSecondBidder,
			SkipIfClubOwned:   in.SkipIfClubOwned,
		})
	}
	return autoBidDTO{
		TeamID:        v.Config.TeamID,
		Enabled:       v.Config.Enabled,
		Instructions:  instructions,
		MaxAllowedBid: v.MaxAllowedBid,
		UpdatedAt:     v.Config.UpdatedAt,
	}
}

func squadToDTO(v usecase.SquadView) squadDTO {
	players := make([]squadPlayerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		dto := playerToDTO(p.Player)
		dto.ClubName = p.ClubName
		players = append(players, squadPlayerDTO{playerDTO: dto, PricePaid: p.PricePaid})
	}
	clubs := make([]squadClubDTO, 0, len(v.Clubs))
	for _, c := range v.Clubs {
		clubs = append(clubs, squadClubDTO{clubDTO: clubToDTO(c.Club), PricePaid: c.PricePaid})
	}
	return squadDTO{
		Team:           teamToDTO(v.Team),
		Players:        players,
		Clubs:          clubs,
		TotalSpent:     v.TotalSpent,
		SlotsRemaining: v.SlotsRemaining,
		MaxAllowedBid:  v.MaxAllowedBid,
	}
}

func gameweekToDTO(info gameweek.Info) gameweekDTO {
	out := gameweekDTO{
		Number:     info.Number,
		Name:       info.Name,
		Type:       string(info.Type),
		MatchCount: info.MatchCount,
		IsCurrent:  info.IsCurrent,
		IsNext:     info.IsNext,
		Finished:   info.Finished,
	}
	if !info.Deadline.IsZero() {
		deadline := info.Deadline
		grace := info.GraceDeadline()
		out.Deadline = &deadline
		out.GraceDeadline = &grace
	}
	return out
}

func submissionToDTO(s gameweek.Submission) submissionDTO {
	return submissionDTO{
		TeamID:           s.TeamID,
		Gameweek:         s.Gameweek,
		Starting:         s.Starting,
		Bench:            s.Bench,
		CaptainID:        s.CaptainID,
		ViceCaptainID:    s.ViceCaptainID,
		ClubMultiplierID: s.ClubMultiplierID,
		Chip:             string(s.Chip),
		SubmittedAt:      s.SubmittedAt,
		Compliance:       string(s.Compliance),
		IsDefault:        s.IsDefault,
	}
}

func chipStatusToDTO(items []chip.Status) []chipStatusDTO {
	out := make([]chipStatusDTO, 0, len(items))
	for _, s := range items {
		out = append(out, chipStatusDTO{
			ID:           string(s.ID),
			Name:         s.Name,
			Description:  s.Description,
			Used:         s.Used,
			GameweekUsed: s.GameweekUsed,
			Planned:      s.Planned,
		})
	}
	return out
}

func substitutionsToDTO(subs []lineup.Substitution) []substitutionDTO {
	out := make([]substitutionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, substitutionDTO{Out: s.Out, In: s.In, Reason: s.Reason})
	}
	return out
}

func pointsToDTO(p scoring.GameweekPoints) pointsDTO {
	return pointsDTO{
		TeamID:             p.TeamID,
		Gameweek:           p.Gameweek,
		BasePoints:         p.BasePoints,
		FinalPoints:        p.FinalPoints,
		Chip:               string(p.Chip),
		EffectiveCaptainID: p.EffectiveCaptainID,
		Substitutions:      substitutionsToDTO(p.Substitutions),
		Rank:               p.Rank,
		CalculatedAt:       p.CalculatedAt,
	}
}

func breakdownToDTO(teamID int64, gw int, r scoring.Result) breakdownDTO {
	players := make([]playerScoreDTO, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, playerScoreDTO{
			PlayerID:         p.PlayerID,
			Position:         string(p.Position),
			Minutes:          p.Minutes,
			BasePoints:       p.BasePoints,
			Multiplier:       p.Multiplier.String(),
			Points:           p.Points,
			Bench:            p.Bench,
			EffectiveCaptain: p.EffectiveCaptain,
			ClubBonus:        p.ClubBonus,
		})
	}
	return breakdownDTO{
		TeamID:             teamID,
		Gameweek:           gw,
		BasePoints:         r.BasePoints,
		SubtotalPoints:     r.SubtotalPoints,
		FinalPoints:        r.FinalPoints,
		Chip:               string(r.Chip),
		EffectiveCaptainID: r.EffectiveCaptainID,
		Starting:           r.Starting,
		Bench:              r.Bench,
		Substitutions:      substitutionsToDTO(r.Substitutions),
		Players:            players,
	}
}

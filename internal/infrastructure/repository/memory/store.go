package memory

import (
	"sync"

	"github.com/riskibarqy/fantasy-auction/internal/domain/auction"
	"github.com/riskibarqy/fantasy-auction/internal/domain/autobid"
	"github.com/riskibarqy/fantasy-auction/internal/domain/chip"
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/draft"
	"github.com/riskibarqy/fantasy-auction/internal/domain/gameweek"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-auction/internal/domain/squad"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
)

// Store holds every aggregate behind one mutex, so operations that touch
// several aggregates (auction completion, restart, draft reset) are atomic.
// Repositories returned by the accessor methods are views over the same Store.
type Store struct {
	mu sync.RWMutex

	teams     map[int64]team.Team
	teamOrder []int64
	players   map[int64]player.Player
	clubs     map[int64]club.Club

	drafts      []draft.Draft
	nextDraftID int64
	orders      map[int64][]draft.OrderEntry
	states      map[int64]draft.State

	auctions      map[int64]auction.Auction
	auctionOrder  []int64
	nextAuctionID int64
	bids          map[int64][]auction.Bid
	nextBidID     int64

	squadItems map[int64][]squad.Item

	autobids     map[int64]autobid.Config
	autobidOrder []int64

	submissions   map[submissionKey]gameweek.Submission
	history       []gameweek.HistoryEntry
	nextHistoryID int64

	chipUsages []chip.Usage
	points     map[submissionKey]scoring.GameweekPoints
}

type submissionKey struct {
	teamID int64
	gw     int
}

// Seed is the reference data loaded into a new Store.
type Seed struct {
	Teams   []team.Team
	Players []player.Player
	Clubs   []club.Club
}

func NewStore(seed Seed) *Store {
	s := &Store{
		teams:       make(map[int64]team.Team),
		players:     make(map[int64]player.Player),
		clubs:       make(map[int64]club.Club),
		orders:      make(map[int64][]draft.OrderEntry),
		states:      make(map[int64]draft.State),
		auctions:    make(map[int64]auction.Auction),
		bids:        make(map[int64][]auction.Bid),
		squadItems:  make(map[int64][]squad.Item),
		autobids:    make(map[int64]autobid.Config),
		submissions: make(map[submissionKey]gameweek.Submission),
		points:      make(map[submissionKey]scoring.GameweekPoints),
	}
	for _, t := range seed.Teams {
		if _, ok := s.teams[t.ID]; !ok {
			s.teamOrder = append(s.teamOrder, t.ID)
		}
		s.teams[t.ID] = t
	}
	for _, p := range seed.Players {
		s.players[p.ID] = p
	}
	for _, c := range seed.Clubs {
		s.clubs[c.ID] = c
	}
	return s
}

func (s *Store) Teams() *TeamRepository             { return &TeamRepository{s: s} }
func (s *Store) Players() *PlayerRepository         { return &PlayerRepository{s: s} }
func (s *Store) Clubs() *ClubRepository             { return &ClubRepository{s: s} }
func (s *Store) Drafts() *DraftRepository           { return &DraftRepository{s: s} }
func (s *Store) Auctions() *AuctionRepository       { return &AuctionRepository{s: s} }
func (s *Store) Squads() *SquadRepository           { return &SquadRepository{s: s} }
func (s *Store) AutoBids() *AutoBidRepository       { return &AutoBidRepository{s: s} }
func (s *Store) Submissions() *SubmissionRepository { return &SubmissionRepository{s: s} }
func (s *Store) Chips() *ChipRepository             { return &ChipRepository{s: s} }
func (s *Store) Points() *PointsRepository          { return &PointsRepository{s: s} }

func cloneInt64s(v []int64) []int64 {
	if v == nil {
		return nil
	}
	return append([]int64(nil), v...)
}

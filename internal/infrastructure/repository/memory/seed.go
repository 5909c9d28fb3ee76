package memory

import (
	"github.com/riskibarqy/fantasy-auction/internal/domain/club"
	"github.com/riskibarqy/fantasy-auction/internal/domain/player"
	"github.com/riskibarqy/fantasy-auction/internal/domain/team"
)

// DefaultSeed is the local development data set. Club and player IDs follow
// the FPL bootstrap-static numbering so live stats resolve against it.
func DefaultSeed() Seed {
	return Seed{
		Teams:   SeedTeams(),
		Players: SeedPlayers(),
		Clubs:   SeedClubs(),
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Highbury Hustlers", Username: "admin", UserID: "user-admin", Budget: team.StartingBudget, IsAdmin: true},
		{ID: 2, Name: "Anfield Anarchy", Username: "kop", UserID: "user-kop", Budget: team.StartingBudget},
		{ID: 3, Name: "Etihad Engineers", Username: "cityzen", UserID: "user-cityzen", Budget: team.StartingBudget},
		{ID: 4, Name: "Villa Vanguard", Username: "villan", UserID: "user-villan", Budget: team.StartingBudget},
	}
}

func SeedClubs() []club.Club {
	return []club.Club{
		{ID: 1, Name: "Arsenal", ShortName: "ARS"},
		{ID: 2, Name: "Aston Villa", ShortName: "AVL"},
		{ID: 3, Name: "Bournemouth", ShortName: "BOU"},
		{ID: 4, Name: "Brentford", ShortName: "BRE"},
		{ID: 5, Name: "Brighton", ShortName: "BHA"},
		{ID: 6, Name: "Chelsea", ShortName: "CHE"},
		{ID: 7, Name: "Crystal Palace", ShortName: "CRY"},
		{ID: 8, Name: "Everton", ShortName: "EVE"},
		{ID: 9, Name: "Fulham", ShortName: "FUL"},
		{ID: 10, Name: "Ipswich", ShortName: "IPS"},
		{ID: 11, Name: "Leicester", ShortName: "LEI"},
		{ID: 12, Name: "Liverpool", ShortName: "LIV"},
		{ID: 13, Name: "Man City", ShortName: "MCI"},
		{ID: 14, Name: "Man Utd", ShortName: "MUN"},
		{ID: 15, Name: "Newcastle", ShortName: "NEW"},
		{ID: 16, Name: "Nott'm Forest", ShortName: "NFO"},
		{ID: 17, Name: "Southampton", ShortName: "SOU"},
		{ID: 18, Name: "Spurs", ShortName: "TOT"},
		{ID: 19, Name: "West Ham", ShortName: "WHU"},
		{ID: 20, Name: "Wolves", ShortName: "WOL"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, WebName: "Raya", FullName: "David Raya Martin", Position: player.PositionGoalkeeper, ClubID: 1, Price: 55, Status: "a"},
		{ID: 3, WebName: "Gabriel", FullName: "Gabriel dos Santos Magalhaes", Position: player.PositionDefender, ClubID: 1, Price: 60, Status: "a"},
		{ID: 5, WebName: "Saliba", FullName: "William Saliba", Position: player.PositionDefender, ClubID: 1, Price: 60, Status: "a"},
		{ID: 17, WebName: "Saka", FullName: "Bukayo Saka", Position: player.PositionMidfielder, ClubID: 1, Price: 100, Status: "a"},
		{ID: 20, WebName: "Odegaard", FullName: "Martin Odegaard", Position: player.PositionMidfielder, ClubID: 1, Price: 85, Status: "a"},
		{ID: 22, WebName: "Havertz", FullName: "Kai Havertz", Position: player.PositionForward, ClubID: 1, Price: 80, Status: "a"},
		{ID: 47, WebName: "Martinez", FullName: "Emiliano Martinez", Position: player.PositionGoalkeeper, ClubID: 2, Price: 50, Status: "a"},
		{ID: 58, WebName: "Watkins", FullName: "Ollie Watkins", Position: player.PositionForward, ClubID: 2, Price: 90, Status: "a"},
		{ID: 60, WebName: "Rogers", FullName: "Morgan Rogers", Position: player.PositionMidfielder, ClubID: 2, Price: 55, Status: "a"},
		{ID: 99, WebName: "Mbeumo", FullName: "Bryan Mbeumo", Position: player.PositionMidfielder, ClubID: 4, Price: 75, Status: "a"},
		{ID: 110, WebName: "Wissa", FullName: "Yoane Wissa", Position: player.PositionForward, ClubID: 4, Price: 65, Status: "a"},
		{ID: 129, WebName: "Mitoma", FullName: "Kaoru Mitoma", Position: player.PositionMidfielder, ClubID: 5, Price: 65, Status: "a"},
		{ID: 182, WebName: "Palmer", FullName: "Cole Palmer", Position: player.PositionMidfielder, ClubID: 6, Price: 110, Status: "a"},
		{ID: 192, WebName: "Sanchez", FullName: "Robert Sanchez", Position: player.PositionGoalkeeper, ClubID: 6, Price: 45, Status: "a"},
		{ID: 201, WebName: "Colwill", FullName: "Levi Colwill", Position: player.PositionDefender, ClubID: 6, Price: 45, Status: "a"},
		{ID: 235, WebName: "Mateta", FullName: "Jean-Philippe Mateta", Position: player.PositionForward, ClubID: 7, Price: 75, Status: "a"},
		{ID: 257, WebName: "Pickford", FullName: "Jordan Pickford", Position: player.PositionGoalkeeper, ClubID: 8, Price: 50, Status: "a"},
		{ID: 311, WebName: "Robinson", FullName: "Antonee Robinson", Position: player.PositionDefender, ClubID: 9, Price: 50, Status: "a"},
		{ID: 328, WebName: "Salah", FullName: "Mohamed Salah", Position: player.PositionMidfielder, ClubID: 12, Price: 135, Status: "a"},
		{ID: 330, WebName: "Alexander-Arnold", FullName: "Trent Alexander-Arnold", Position: player.PositionDefender, ClubID: 12, Price: 70, Status: "a"},
		{ID: 338, WebName: "Van Dijk", FullName: "Virgil van Dijk", Position: player.PositionDefender, ClubID: 12, Price: 65, Status: "a"},
		{ID: 350, WebName: "Alisson", FullName: "Alisson Becker", Position: player.PositionGoalkeeper, ClubID: 12, Price: 55, Status: "a"},
		{ID: 351, WebName: "Gakpo", FullName: "Cody Gakpo", Position: player.PositionMidfielder, ClubID: 12, Price: 75, Status: "a"},
		{ID: 355, WebName: "Haaland", FullName: "Erling Haaland", Position: player.PositionForward, ClubID: 13, Price: 150, Status: "a"},
		{ID: 366, WebName: "Gvardiol", FullName: "Josko Gvardiol", Position: player.PositionDefender, ClubID: 13, Price: 60, Status: "a"},
		{ID: 372, WebName: "Foden", FullName: "Phil Foden", Position: player.PositionMidfielder, ClubID: 13, Price: 90, Status: "a"},
		{ID: 383, WebName: "Ederson M.", FullName: "Ederson Santana de Moraes", Position: player.PositionGoalkeeper, ClubID: 13, Price: 55, Status: "a"},
		{ID: 401, WebName: "B.Fernandes", FullName: "Bruno Borges Fernandes", Position: player.PositionMidfielder, ClubID: 14, Price: 85, Status: "a"},
		{ID: 447, WebName: "Isak", FullName: "Alexander Isak", Position: player.PositionForward, ClubID: 15, Price: 95, Status: "a"},
		{ID: 448, WebName: "Gordon", FullName: "Anthony Gordon", Position: player.PositionMidfielder, ClubID: 15, Price: 75, Status: "a"},
		{ID: 465, WebName: "Wood", FullName: "Chris Wood", Position: player.PositionForward, ClubID: 16, Price: 70, Status: "a"},
		{ID: 477, WebName: "Milenkovic", FullName: "Nikola Milenkovic", Position: player.PositionDefender, ClubID: 16, Price: 50, Status: "a"},
		{ID: 501, WebName: "Son", FullName: "Son Heung-min", Position: player.PositionMidfielder, ClubID: 18, Price: 95, Status: "a"},
		{ID: 514, WebName: "Porro", FullName: "Pedro Porro", Position: player.PositionDefender, ClubID: 18, Price: 55, Status: "a"},
		{ID: 541, WebName: "Bowen", FullName: "Jarrod Bowen", Position: player.PositionMidfielder, ClubID: 19, Price: 75, Status: "a"},
		{ID: 569, WebName: "Cunha", FullName: "Matheus Cunha", Position: player.PositionForward, ClubID: 20, Price: 70, Status: "a"},
	}
}

package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StatsProvider --dir ../domain/gameweek --output domain/gameweek --outpkg gameweekmock --filename stats_provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Calendar --dir ../domain/gameweek --output domain/gameweek --outpkg gameweekmock --filename calendar_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go

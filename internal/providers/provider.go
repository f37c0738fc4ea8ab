package providers

import (
	"context"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
)

// GameProvider defines how upstream schedule data is fetched and normalized.
// The date parameter is a YYYY-MM-DD string naming the day whose games to fetch.
type GameProvider interface {
	FetchGames(ctx context.Context, date string) ([]games.Game, error)
}

// Closer is implemented by providers holding background resources.
type Closer interface {
	Close()
}

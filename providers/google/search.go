package google

import (
	"context"
	"unicode/utf8"

	"synastry-service/models"
)

// Search returns up to limit geocoding candidates for query. Queries
// shorter than two runes return an empty list.
func (g *GoogleSource) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	if utf8.RuneCountInString(query) < 2 {
		return []models.Location{}, nil
	}
	locs, err := g.geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	if len(locs) > limit {
		locs = locs[:limit]
	}
	if locs == nil {
		locs = []models.Location{}
	}
	return locs, nil
}

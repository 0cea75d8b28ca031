package nominatim

import (
	"context"
	"unicode/utf8"

	"synastry-service/models"
)

// MinQueryLength is the shortest query sent upstream.
const MinQueryLength = 2

// Search returns up to limit suggestions for query. Queries shorter than
// MinQueryLength runes return an empty list without a request.
func (n *NominatimSource) Search(ctx context.Context, query string, limit int) ([]models.Location, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return []models.Location{}, nil
	}
	if limit <= 0 {
		limit = 5
	}
	return n.search(ctx, query, limit)
}

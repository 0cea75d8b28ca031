package synastry

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"synastry-service/models"
)

// HighCompatibilityThreshold marks a match as highly compatible.
const HighCompatibilityThreshold = 0.6

// MatchOptions filters and bounds a ranking run.
type MatchOptions struct {
	MinAge int
	MaxAge int // 0 means no upper bound

	// Now is the reference date for ages; zero means time.Now().
	Now time.Time

	// Concurrency caps parallel synastry computations; <= 0 means 4.
	Concurrency int
}

// Age returns whole years between birth and now by birthday arithmetic.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Eligible reports whether seeker and candidate want each other.
func Eligible(seeker, candidate models.Profile) bool {
	if seeker.ID != "" && seeker.ID == candidate.ID {
		return false
	}
	return seeker.Wants(candidate.Gender) && candidate.Wants(seeker.Gender)
}

// Rank computes the synastry of seeker with every eligible candidate in the
// age range and returns the matches sorted by compatibility, best first.
// Candidates whose birth date cannot be parsed are skipped.
func Rank(ctx context.Context, seeker models.Profile, candidates []models.Profile, opts MatchOptions) ([]models.Match, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	pool := make([]models.Match, 0, len(candidates))
	for _, c := range candidates {
		if !Eligible(seeker, c) {
			continue
		}
		birth, err := time.Parse("2006-01-02", c.BirthDate)
		if err != nil {
			continue
		}
		age := Age(birth, now)
		if age < opts.MinAge || (opts.MaxAge > 0 && age > opts.MaxAge) {
			continue
		}
		pool = append(pool, models.Match{Profile: c, Age: age})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range pool {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := &pool[i]
			m.Result = Compute(seeker.Chart, m.Profile.Chart)
			m.HighCompatibility = m.Result.CompatibilityScore >= HighCompatibilityThreshold
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Result.CompatibilityScore > pool[j].Result.CompatibilityScore
	})
	return pool, nil
}

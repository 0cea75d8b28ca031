package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/chart"
	"synastry-service/models"
	"synastry-service/storage"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func testProfile(t *testing.T, id, username string, created time.Time) models.Profile {
	t.Helper()
	c, err := chart.Build(2446323.5166667, 36.7378, -119.7871, true, models.Placidus)
	require.NoError(t, err)
	return models.Profile{
		ID:              id,
		Username:        username,
		BirthDate:       "1985-09-14",
		BirthTime:       "17:24",
		Place:           "Fresno, CA",
		TimeZone:        "America/Los_Angeles",
		Gender:          models.GenderMan,
		LookingForWomen: true,
		Bio:             "hi",
		Location:        models.Location{DisplayName: "Fresno, CA, USA", Latitude: 36.7378, Longitude: -119.7871, Provider: "Gazetteer"},
		Chart:           c,
		CreatedAt:       created,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	want := testProfile(t, "p1", "fresno", created)

	require.NoError(t, s.Create(ctx, want))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, want.Username, got.Username)
	assert.Equal(t, want.TimeZone, got.TimeZone)
	assert.True(t, got.LookingForWomen)
	assert.False(t, got.LookingForMen)
	assert.Equal(t, want.Location, got.Location)
	assert.True(t, created.Equal(got.CreatedAt))

	assert.Equal(t, want.Chart.Positions, got.Chart.Positions)
	assert.Equal(t, want.Chart.Placements, got.Chart.Placements)
	require.NotNil(t, got.Chart.Houses)
	assert.Equal(t, *want.Chart.Houses, *got.Chart.Houses)
	assert.Equal(t, models.Placidus, got.Chart.HouseSystem)
}

func TestStoreErrors(t *testing.T) {
	ctx := context.Background()
	s, _ := openTestStore(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "missing"), storage.ErrNotFound)

	require.NoError(t, s.Create(ctx, testProfile(t, "p1", "fresno", time.Time{})))
	assert.ErrorIs(t, s.Create(ctx, testProfile(t, "p2", "FRESNO", time.Time{})), storage.ErrAlreadyExists)
	assert.ErrorIs(t, s.Create(ctx, testProfile(t, "p1", "other", time.Time{})), storage.ErrAlreadyExists)
}

func TestStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s, path := openTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, testProfile(t, "b", "bea", base.Add(time.Minute))))
	require.NoError(t, s.Create(ctx, testProfile(t, "a", "al", base)))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Close())

	// reopening reapplies nothing and keeps data
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	list, err = reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}

func TestOpenAppliesPragmas(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	var journal string
	require.NoError(t, s.sqlDB.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journal))
	assert.Equal(t, "wal", journal)

	var busy, foreignKeys int
	require.NoError(t, s.sqlDB.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy))
	assert.Equal(t, 5000, busy)
	require.NoError(t, s.sqlDB.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
}

func TestStoreConcurrentCreate(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	base := testProfile(t, "seed", "seed", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	const writers = 50
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := base
			p.ID = fmt.Sprintf("p%02d", i)
			p.Username = fmt.Sprintf("user%02d", i)
			p.CreatedAt = base.CreatedAt.Add(time.Duration(i) * time.Second)
			if err := s.Create(ctx, p); err != nil {
				errs <- err
				return
			}
			if _, err := s.List(ctx); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, writers)
}

func TestUpSection(t *testing.T) {
	sql := "-- +migrate Up\nCREATE TABLE x (id INT);\n-- +migrate Down\nDROP TABLE x;\n"
	assert.Equal(t, "\nCREATE TABLE x (id INT);\n", upSection(sql))
	assert.Equal(t, "SELECT 1;", upSection("SELECT 1;"))
}

package trackstats

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorev/laptime-engine/internal/models"
)

type fakeLapRepo struct {
	records []*models.LapTimeRecord
	err     error
	calls   int
}

func (f *fakeLapRepo) GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.LapTimeRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeLapRepo) GetByCarRange(ctx context.Context, trackID uuid.UUID, minHP, maxHP, minWeight, maxWeight, limit int) ([]*models.LapTimeRecord, error) {
	return nil, nil
}

type fakeTrackRepo struct {
	track *models.Track
	err   error
}

func (f *fakeTrackRepo) GetBySlug(ctx context.Context, slug string) (*models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

func (f *fakeTrackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

// proEverything classifies every record as professional.
type proEverything struct{}

func (proEverything) IsProfessional(rec *models.LapTimeRecord) bool { return true }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func msRecords(trackID uuid.UUID, ms ...int) []*models.LapTimeRecord {
	records := make([]*models.LapTimeRecord, 0, len(ms))
	for _, m := range ms {
		records = append(records, &models.LapTimeRecord{
			ID:        uuid.New(),
			TrackID:   trackID,
			LapTimeMs: m,
		})
	}
	return records
}

// TestBuilderSummaryCounts tests the count and extremal fields
func TestBuilderSummaryCounts(t *testing.T) {
	trackID := uuid.New()
	records := msRecords(trackID, 90000, 91000, 92000, 93000, 94000, 95000)
	records[0].IsStock = true
	records[1].IsStock = true
	records[2].SourceURL = "https://fastestlaps.com/tests/gt3"

	builder := NewBuilder(
		&fakeLapRepo{records: records},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		nil, nil, testLogger(),
	)

	summary := builder.TrackStats(context.Background(), "vir")

	require.NotNil(t, summary)
	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 1, summary.Professional)
	assert.Equal(t, 5, summary.Amateur)
	assert.Equal(t, 2, summary.Stock)
	assert.Equal(t, 90.0, summary.Fastest)
	assert.Equal(t, 95.0, summary.Slowest)
	assert.InDelta(t, 92.5, summary.Median, 1e-9)
}

// TestBuilderLadderOrdering tests the percentile ladder invariant
func TestBuilderLadderOrdering(t *testing.T) {
	trackID := uuid.New()
	records := msRecords(trackID, 88000, 90000, 92000, 95000, 97000, 99000, 102000, 106000)

	builder := NewBuilder(
		&fakeLapRepo{records: records},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		nil, nil, testLogger(),
	)

	summary := builder.TrackStats(context.Background(), "vir")

	require.NotNil(t, summary)
	assert.LessOrEqual(t, summary.P5, summary.P25)
	assert.LessOrEqual(t, summary.P25, summary.P50)
	assert.LessOrEqual(t, summary.P50, summary.P65)
	assert.LessOrEqual(t, summary.P65, summary.P90)
}

// TestBuilderNoRecordsWithReference tests the curated-reference-only summary
func TestBuilderNoRecordsWithReference(t *testing.T) {
	trackID := uuid.New()
	ref := 118.5
	builder := NewBuilder(
		&fakeLapRepo{},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "spa", ProReferenceTime: &ref}},
		nil, nil, testLogger(),
	)

	summary := builder.TrackStats(context.Background(), "spa")

	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Total)
	assert.True(t, summary.HasProReference())
	assert.True(t, summary.ProReferenceAuthoritative)
	assert.Equal(t, 118.5, *summary.ProReferenceTime)
}

// TestBuilderNoRecordsNoReference tests degradation to nil
func TestBuilderNoRecordsNoReference(t *testing.T) {
	trackID := uuid.New()
	builder := NewBuilder(
		&fakeLapRepo{},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "spa"}},
		nil, nil, testLogger(),
	)

	assert.Nil(t, builder.TrackStats(context.Background(), "spa"))
}

// TestBuilderTrackLookupFailure tests fail-soft on unknown tracks
func TestBuilderTrackLookupFailure(t *testing.T) {
	builder := NewBuilder(
		&fakeLapRepo{},
		&fakeTrackRepo{err: models.ErrNotFound},
		nil, nil, testLogger(),
	)

	assert.Nil(t, builder.TrackStats(context.Background(), "nowhere"))
}

// TestBuilderQueryFailure tests fail-soft on lap time query errors
func TestBuilderQueryFailure(t *testing.T) {
	trackID := uuid.New()
	builder := NewBuilder(
		&fakeLapRepo{err: errors.New("statement timeout")},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		nil, nil, testLogger(),
	)

	assert.Nil(t, builder.TrackStats(context.Background(), "vir"))
}

// TestBuilderDerivedProReference tests fallback to the fastest professional time
func TestBuilderDerivedProReference(t *testing.T) {
	trackID := uuid.New()
	records := msRecords(trackID, 90000, 91000, 92000, 93000, 94000)

	builder := NewBuilder(
		&fakeLapRepo{records: records},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		proEverything{}, nil, testLogger(),
	)

	summary := builder.TrackStats(context.Background(), "vir")

	require.NotNil(t, summary)
	assert.Equal(t, 5, summary.Professional)
	require.True(t, summary.HasProReference())
	assert.False(t, summary.ProReferenceAuthoritative)
	assert.Equal(t, 90.0, *summary.ProReferenceTime)
}

// TestBuilderAuthoritativeReferenceWins tests that the curated reference outranks records
func TestBuilderAuthoritativeReferenceWins(t *testing.T) {
	trackID := uuid.New()
	ref := 85.0
	records := msRecords(trackID, 90000, 91000, 92000, 93000, 94000)

	builder := NewBuilder(
		&fakeLapRepo{records: records},
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir", ProReferenceTime: &ref}},
		proEverything{}, nil, testLogger(),
	)

	summary := builder.TrackStats(context.Background(), "vir")

	require.NotNil(t, summary)
	require.True(t, summary.HasProReference())
	assert.True(t, summary.ProReferenceAuthoritative)
	assert.Equal(t, 85.0, *summary.ProReferenceTime)
}

// TestBuilderCachesSummaries tests that repeated lookups hit the cache
func TestBuilderCachesSummaries(t *testing.T) {
	trackID := uuid.New()
	laps := &fakeLapRepo{records: msRecords(trackID, 90000, 91000, 92000, 93000, 94000)}
	cache := NewCache(DefaultTTL)

	builder := NewBuilder(
		laps,
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		nil, cache, testLogger(),
	)

	first := builder.TrackStats(context.Background(), "vir")
	second := builder.TrackStats(context.Background(), "vir")

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, 1, laps.calls)
}

// TestBuilderRefreshBypassesCache tests the prewarm path
func TestBuilderRefreshBypassesCache(t *testing.T) {
	trackID := uuid.New()
	laps := &fakeLapRepo{records: msRecords(trackID, 90000, 91000, 92000, 93000, 94000)}
	cache := NewCache(DefaultTTL)

	builder := NewBuilder(
		laps,
		&fakeTrackRepo{track: &models.Track{ID: trackID, Slug: "vir"}},
		nil, cache, testLogger(),
	)

	require.NotNil(t, builder.TrackStats(context.Background(), "vir"))
	require.NotNil(t, builder.Refresh(context.Background(), "vir"))
	assert.Equal(t, 2, laps.calls)
}

package scheduler

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorev/laptime-engine/internal/models"
	"github.com/autorev/laptime-engine/internal/trackstats"
)

type fakeLapRepo struct{}

func (fakeLapRepo) GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.LapTimeRecord, error) {
	return nil, nil
}

func (fakeLapRepo) GetByCarRange(ctx context.Context, trackID uuid.UUID, minHP, maxHP, minWeight, maxWeight, limit int) ([]*models.LapTimeRecord, error) {
	return nil, nil
}

type fakeTrackRepo struct{}

func (fakeTrackRepo) GetBySlug(ctx context.Context, slug string) (*models.Track, error) {
	return nil, models.ErrNotFound
}

func (fakeTrackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	return nil, models.ErrNotFound
}

func newTestScheduler(tracks []string) *Scheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	builder := trackstats.NewBuilder(fakeLapRepo{}, fakeTrackRepo{}, nil, nil, logger)
	return NewScheduler(builder, tracks, logger)
}

// TestSchedulePrewarmNoTracks tests that scheduling without tracks fails
func TestSchedulePrewarmNoTracks(t *testing.T) {
	s := newTestScheduler(nil)
	err := s.SchedulePrewarm("*/5 * * * *")
	assert.Error(t, err)
}

// TestSchedulePrewarmInvalidExpression tests cron expression validation
func TestSchedulePrewarmInvalidExpression(t *testing.T) {
	s := newTestScheduler([]string{"laguna-seca"})
	err := s.SchedulePrewarm("not a cron expression")
	assert.Error(t, err)
}

// TestSchedulerLifecycle tests scheduling and the start/stop cycle
func TestSchedulerLifecycle(t *testing.T) {
	s := newTestScheduler([]string{"laguna-seca", "spa"})
	require.NoError(t, s.SchedulePrewarm("*/5 * * * *"))

	assert.False(t, s.IsRunning())
	s.Start()
	assert.True(t, s.IsRunning())

	// Starting twice is a no-op.
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

// TestPrewarmToleratesMissingTracks tests that prewarm survives unknown slugs
func TestPrewarmToleratesMissingTracks(t *testing.T) {
	s := newTestScheduler([]string{"ghost-track"})
	require.NoError(t, s.SchedulePrewarm("*/5 * * * *"))

	// Runs the job body directly; every track fails to resolve and the run
	// must still complete.
	s.prewarm()
}

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/maskecs/ecs"
	"github.com/plus3/maskecs/internal/config"
)

func testStressConfig() config.StressConfig {
	return config.StressConfig{
		Duration:   time.Second,
		Entities:   200,
		Components: 8,
		Systems:    6,
		Churn:      0.1,
		Seed:       3,
	}
}

func TestStressWorldKeepsPopulationSteady(t *testing.T) {
	sw := newStressWorld(testStressConfig(), zaptest.NewLogger(t))
	require.Equal(t, 200, sw.world.EntityCount())
	require.Len(t, sw.components, 8)

	for i := 0; i < 20; i++ {
		sw.world.AdvanceTick()
	}

	// the last tick's destructions are still queued
	assert.Equal(t, 200+sw.world.PendingDestroy(), sw.world.EntityCount())
	assert.Len(t, sw.live, 200)
	assert.Equal(t, int64(200)+sw.destroyed, sw.spawned)
	assert.Greater(t, sw.destroyed, int64(0))
	for _, id := range sw.live {
		assert.True(t, sw.world.Alive(id))
	}
}

func TestStressSystemsMatchTheirMasks(t *testing.T) {
	sw := newStressWorld(testStressConfig(), zaptest.NewLogger(t))
	sw.world.AdvanceTick()

	stats := sw.world.Stats()
	require.Len(t, stats.Systems, 7)
	assert.Equal(t, "churn", stats.Systems[0].Name)
	for _, sys := range stats.Systems[1:] {
		assert.NotZero(t, sys.Require, sys.Name)
		assert.False(t, sys.Require.Intersects(sys.Exclude), sys.Name)
		assert.Equal(t, len(sw.world.QueryMask(sys.Require, sys.Exclude)), sys.LastEntities, sys.Name)
	}
}

func TestSpawnRandomStaysInRange(t *testing.T) {
	cfg := testStressConfig()
	cfg.Entities = 0
	sw := newStressWorld(cfg, zaptest.NewLogger(t))

	for i := 0; i < 50; i++ {
		mask, ok := sw.world.Mask(sw.spawnRandom())
		require.True(t, ok)
		assert.GreaterOrEqual(t, mask.Count(), 1)
		assert.LessOrEqual(t, mask.Count(), 5)
	}
}

func TestReportGenerate(t *testing.T) {
	sw := newStressWorld(testStressConfig(), zaptest.NewLogger(t))
	report := &Report{Duration: time.Second, Entities: 200, Components: 8, Systems: 6, Churn: 0.1, Seed: 3}
	for i := 0; i < 4; i++ {
		start := time.Now()
		sw.world.AdvanceTick()
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(start))
	}
	report.Collect(sw)

	assert.Equal(t, int64(4), report.TotalUpdates)
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.P99)
	assert.LessOrEqual(t, report.UpdateTime.P99, report.UpdateTime.Max)
	assert.Len(t, report.Slowest, slowestSystems)
	assert.Equal(t, ecs.EntityId(report.Spawned), report.HighestEntity)

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	assert.Contains(t, buf.String(), "**Total Updates:** 4")
	assert.Contains(t, buf.String(), "## Slowest Systems")
}

func TestStatsFinalizeEmpty(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)
	assert.Zero(t, s.P99)
}

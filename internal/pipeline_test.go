package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Scales:    [3]int{4, 6, 8},
		Clusters:  12,
		Effective: 5,
		Seed:      7,
		Threshold: 1e-6,
		Stride:    1,
	}
}

// testPeriods — синтетический ряд из наложенных колебаний, разбитый
// на три периода по 120 цен.
func testPeriods() (p1, p2, p3 []float64) {
	prices := make([]float64, 360)
	for i := range prices {
		x := float64(i)
		prices[i] = 100 + 5*math.Sin(0.35*x) + 3*math.Sin(0.11*x+1) + 0.8*math.Cos(1.7*x)
	}
	return prices[:120], prices[120:240], prices[240:]
}

func TestRun_EndToEnd(t *testing.T) {
	p1, p2, p3 := testPeriods()
	cfg := testPipelineConfig()

	result, err := Run(p1, p2, p3, cfg)
	require.NoError(t, err)

	// Библиотеки: по m эффективных центров размерности scale+1
	for i, lib := range result.Libraries {
		require.Len(t, lib, cfg.Effective, "library %d", i)
		for _, c := range lib {
			require.Len(t, []float64(c), cfg.Scales[i]+1)
		}
	}

	// Длина сигнала: len(p3) - maxScale - 1
	assert.Len(t, result.Signal, len(p3)-cfg.Scales[2]-1)
	for _, s := range result.Signal {
		require.False(t, math.IsNaN(s) || math.IsInf(s, 0))
	}

	// Ограниченная политика всегда закрывает позицию
	assert.Equal(t, 0, result.Bounded.Inventory)
}

func TestRun_DeterministicForSeed(t *testing.T) {
	p1, p2, p3 := testPeriods()
	cfg := testPipelineConfig()

	first, err := Run(p1, p2, p3, cfg)
	require.NoError(t, err)
	second, err := Run(p1, p2, p3, cfg)
	require.NoError(t, err)

	// Конвейер воспроизводим целиком: от центроидов до балансов
	assert.Equal(t, first.Libraries, second.Libraries)
	assert.Equal(t, first.Model, second.Model)
	assert.Equal(t, first.Signal, second.Signal)
	assert.Equal(t, first.Bounded, second.Bounded)
	assert.Equal(t, first.Unbounded, second.Unbounded)
}

func TestRun_PeriodTooShort(t *testing.T) {
	p1, p2, _ := testPeriods()
	cfg := testPipelineConfig()

	var insufficient *ErrInsufficientData
	_, err := Run(p1, p2, []float64{1, 2, 3}, cfg)
	require.ErrorAs(t, err, &insufficient)

	_, err = Run([]float64{1, 2, 3}, p2, p2, cfg)
	require.ErrorAs(t, err, &insufficient)
}

func TestPipelineConfig_Validate(t *testing.T) {
	valid := testPipelineConfig()
	require.NoError(t, valid.Validate())

	cases := map[string]func(*PipelineConfig){
		"zero scale":          func(c *PipelineConfig) { c.Scales[0] = 0 },
		"non-increasing":      func(c *PipelineConfig) { c.Scales = [3]int{6, 6, 8} },
		"zero clusters":       func(c *PipelineConfig) { c.Clusters = 0 },
		"effective above k":   func(c *PipelineConfig) { c.Effective = c.Clusters + 1 },
		"zero effective":      func(c *PipelineConfig) { c.Effective = 0 },
		"zero threshold":      func(c *PipelineConfig) { c.Threshold = 0 },
		"negative threshold":  func(c *PipelineConfig) { c.Threshold = -0.1 },
		"zero stride":         func(c *PipelineConfig) { c.Stride = 0 },
	}
	for name, mutate := range cases {
		cfg := testPipelineConfig()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestBuildLibraries_ScaleMismatchedData(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.Clusters = 200 // больше, чем окон в коротком периоде

	p1, _, _ := testPeriods()
	_, err := BuildLibraries(p1, cfg)
	var insufficient *ErrInsufficientData
	require.ErrorAs(t, err, &insufficient)
}

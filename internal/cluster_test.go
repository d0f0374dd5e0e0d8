package internal

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticWindows(t *testing.T, count int) []Window {
	t.Helper()
	prices := make([]float64, count+3)
	for i := range prices {
		prices[i] = 100 + 7*math.Sin(float64(i)*0.37) + 3*math.Cos(float64(i)*1.21)
	}
	windows, err := GenerateTimeseries(prices, 3)
	require.NoError(t, err)
	require.Len(t, windows, count)
	return windows
}

func TestFindClusterCenters_DeterministicForSeed(t *testing.T) {
	windows := syntheticWindows(t, 40)

	first, err := FindClusterCenters(windows, 6, 17)
	require.NoError(t, err)
	second, err := FindClusterCenters(windows, 6, 17)
	require.NoError(t, err)

	// Одинаковый seed — идентичные центроиды в идентичном порядке
	assert.Equal(t, first, second)

	// И отбор эффективных центров тоже воспроизводим
	libFirst, err := ChooseEffectiveCenters(first, 4)
	require.NoError(t, err)
	libSecond, err := ChooseEffectiveCenters(second, 4)
	require.NoError(t, err)
	assert.Equal(t, libFirst, libSecond)
}

func TestFindClusterCenters_CentroidDimension(t *testing.T) {
	windows := syntheticWindows(t, 25)

	centers, err := FindClusterCenters(windows, 5, 1)
	require.NoError(t, err)
	require.Len(t, centers, 5)

	// Центроид живёт в пространстве признаки+метка: n+1 координат
	for _, c := range centers {
		assert.Len(t, []float64(c), 4)
	}
}

func TestFindClusterCenters_SeparatedGroups(t *testing.T) {
	// Две далеко разнесённые группы одинаковых точек: центроиды обязаны
	// совпасть со средними групп.
	var windows []Window
	for i := 0; i < 5; i++ {
		windows = append(windows, Window{Features: []float64{0, 0}, Label: 1})
	}
	for i := 0; i < 5; i++ {
		windows = append(windows, Window{Features: []float64{100, 100}, Label: -1})
	}

	centers, err := FindClusterCenters(windows, 2, 3)
	require.NoError(t, err)
	require.Len(t, centers, 2)

	sort.Slice(centers, func(i, j int) bool { return centers[i][0] < centers[j][0] })
	assert.Equal(t, Center{0, 0, 1}, centers[0])
	assert.Equal(t, Center{100, 100, -1}, centers[1])
}

func TestFindClusterCenters_InsufficientData(t *testing.T) {
	windows := syntheticWindows(t, 4)

	_, err := FindClusterCenters(windows, 10, 1)
	var insufficient *ErrInsufficientData
	require.ErrorAs(t, err, &insufficient)

	_, err = FindClusterCenters(windows, 0, 1)
	require.ErrorAs(t, err, &insufficient)
}

func TestChooseEffectiveCenters_RanksByFeatureRangeOnly(t *testing.T) {
	flatHugeLabel := Center{5, 5, 5, 1000} // размах признаков 0, метка огромная
	midRange := Center{0, 3, 0, 0}         // размах 3
	wideRange := Center{0, 5, 1, 0}        // размах 5

	lib, err := ChooseEffectiveCenters([]Center{flatHugeLabel, midRange, wideRange}, 2)
	require.NoError(t, err)

	// Метка в размахе не участвует: плоский центр с огромной меткой
	// проигрывает, порядок — по возрастанию размаха.
	assert.Equal(t, Library{midRange, wideRange}, lib)
}

func TestChooseEffectiveCenters_TieKeepsOriginalOrder(t *testing.T) {
	a := Center{0, 2, 0, 1}
	b := Center{1, 3, 1, 2} // такой же размах 2
	c := Center{0, 9, 0, 3}

	lib, err := ChooseEffectiveCenters([]Center{a, b, c}, 3)
	require.NoError(t, err)

	// При равных размахах сохраняется исходный порядок (a перед b)
	assert.Equal(t, Library{a, b, c}, lib)
}

func TestChooseEffectiveCenters_InvalidCount(t *testing.T) {
	centers := []Center{{0, 1, 0}, {0, 2, 0}}

	var insufficient *ErrInsufficientData
	_, err := ChooseEffectiveCenters(centers, 3)
	require.True(t, errors.As(err, &insufficient))

	_, err = ChooseEffectiveCenters(centers, 0)
	require.True(t, errors.As(err, &insufficient))
}

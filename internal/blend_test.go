package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitBlendModel_RecoversKnownCoefficients(t *testing.T) {
	// Строки с известной линейной зависимостью:
	// delta = 2 + 3*d1 - 1*d2 + 0.5*d3
	rows := make([][4]float64, 60)
	for i := range rows {
		x := float64(i)
		d1 := math.Sin(0.3 * x)
		d2 := math.Cos(0.7 * x)
		d3 := math.Sin(1.1*x + 0.5)
		rows[i] = [4]float64{d1, d2, d3, 2 + 3*d1 - d2 + 0.5*d3}
	}

	model, err := FitBlendModel(rows)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, model.W0, 1e-8)
	assert.InDelta(t, 3.0, model.W1, 1e-8)
	assert.InDelta(t, -1.0, model.W2, 1e-8)
	assert.InDelta(t, 0.5, model.W3, 1e-8)
}

func TestFitBlendModel_UnderDetermined(t *testing.T) {
	rows := [][4]float64{
		{1, 2, 3, 4},
		{2, 3, 4, 5},
		{3, 4, 5, 6},
	}

	var singular *ErrSingularFit
	_, err := FitBlendModel(rows)
	require.ErrorAs(t, err, &singular)
}

func TestFitBlendModel_CollinearPredictors(t *testing.T) {
	// d2 — точная копия d1 с коэффициентом: ранг матрицы плана 3 из 4.
	// Решение через нормальные уравнения здесь бы рассыпалось, SVD
	// обязан распознать вырождение.
	rows := make([][4]float64, 30)
	for i := range rows {
		d1 := math.Sin(0.9 * float64(i))
		d3 := math.Cos(0.4 * float64(i))
		rows[i] = [4]float64{d1, 2 * d1, d3, 1 + d1 + d3}
	}

	var singular *ErrSingularFit
	_, err := FitBlendModel(rows)
	require.ErrorAs(t, err, &singular)
}

// zeroLibraries — библиотеки с нулевыми признаками и нулевой меткой:
// любое ядерное предсказание по ним равно 0.
func zeroLibraries(scales [3]int) [3]Library {
	var libs [3]Library
	for i, s := range scales {
		libs[i] = Library{make(Center, s+1)}
	}
	return libs
}

func TestRegressionVars_RowAlignment(t *testing.T) {
	scales := [3]int{2, 3, 4}
	prices := []float64{1, 2, 4, 7, 11, 16, 22, 29, 37, 46}

	rows, err := RegressionVars(prices, zeroLibraries(scales), scales)
	require.NoError(t, err)

	// Пригодные шаги: i от 4 до len-2=8, итого len-maxScale-1=5 строк
	require.Len(t, rows, 5)

	// Метка строки idx — реализованное изменение на шаге i = idx+4
	for idx, row := range rows {
		i := idx + 4
		assert.Equal(t, prices[i+1]-prices[i], row[3], "row %d", idx)
		// Нулевые библиотеки дают нулевые ядерные оценки
		assert.Zero(t, row[0])
		assert.Zero(t, row[1])
		assert.Zero(t, row[2])
	}
}

func TestRegressionVars_PeriodTooShort(t *testing.T) {
	scales := [3]int{2, 3, 4}
	prices := []float64{1, 2, 3, 4, 5} // нужен хотя бы maxScale+2 = 6

	var insufficient *ErrInsufficientData
	_, err := RegressionVars(prices, zeroLibraries(scales), scales)
	require.ErrorAs(t, err, &insufficient)
}

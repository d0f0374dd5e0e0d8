// kernel.go — ядерная оценка следующего изменения цены (Надарая-Уотсон)
package internal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// kernelBandwidth — фиксированный коэффициент в показателе экспоненты.
const kernelBandwidth = 0.25

// PredictDelta оценивает следующее изменение цены для окна x как
// взвешенное среднее меток библиотеки: вес центра j равен
// exp(-0.25 * ||x - features_j||^2). Чем ближе окно по форме к
// историческому паттерну, тем больше его вклад.
//
// Для далёких окон все веса одновременно уходят в ноль на обычной
// double-точности и отношение превращается в 0/0. Поэтому суммирование
// ведётся после нормировки на максимальный показатель экспоненты
// (log-sum-exp): максимальный вес всегда ровно 1, и отношение
// определено даже там, где сырые веса давно underflow.
func PredictDelta(x []float64, lib Library) (float64, error) {
	if len(lib) == 0 {
		return 0, ErrEmptyLibrary
	}

	exponents := make([]float64, len(lib))
	for j, c := range lib {
		f := c.Features()
		if len(f) != len(x) {
			return 0, fmt.Errorf("center %d has %d features, query has %d", j, len(f), len(x))
		}
		d := floats.Distance(x, f, 2)
		exponents[j] = -kernelBandwidth * d * d
	}

	maxExp := floats.Max(exponents)
	var num, den float64
	for j, c := range lib {
		w := math.Exp(exponents[j] - maxExp)
		num += c.Label() * w
		den += w
	}

	// После нормировки den >= 1, ноль возможен только при NaN во входе.
	if den == 0 || math.IsNaN(den) {
		return 0, ErrDegenerateKernelWeights
	}
	return num / den, nil
}

// blend.go — линейная модель, смешивающая ядерные оценки трёх масштабов
package internal

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	lop "github.com/samber/lo/parallel"
	"gonum.org/v1/gonum/mat"
)

// BlendModel — коэффициенты линейной модели
// delta = W0 + W1*d1 + W2*d2 + W3*d3.
type BlendModel struct {
	W0, W1, W2, W3 float64
}

// Apply вычисляет смешанную оценку для тройки ядерных предсказаний.
func (m BlendModel) Apply(d1, d2, d3 float64) float64 {
	return m.W0 + m.W1*d1 + m.W2*d2 + m.W3*d3
}

// rcondTolerance — относительный порог сингулярных чисел при определении ранга.
const rcondTolerance = 1e-12

type tripleResult struct {
	d   [3]float64
	err error
}

// kernelTriples считает тройки ядерных предсказаний (d1, d2, d3) для
// каждого пригодного шага i: maxScale <= i <= len(prices)-2. Для шага i
// запрос масштаба s — хвостовое окно prices[i-scales[s]:i].
// Шаги независимы и считаются параллельно: все входы только читаются.
func kernelTriples(prices []float64, libs [3]Library, scales [3]int) ([][3]float64, error) {
	maxScale := scales[2]
	if len(prices) < maxScale+2 {
		return nil, &ErrInsufficientData{op: "kernel triples", got: len(prices), need: maxScale + 2}
	}

	m := len(prices) - maxScale - 1
	results := lop.Map(lo.Range(m), func(idx int, _ int) tripleResult {
		i := idx + maxScale
		var r tripleResult
		for s := 0; s < 3; s++ {
			d, err := PredictDelta(prices[i-scales[s]:i], libs[s])
			if err != nil {
				r.err = fmt.Errorf("scale %d, step %d: %w", scales[s], i, err)
				return r
			}
			if math.IsNaN(d) || math.IsInf(d, 0) {
				r.err = fmt.Errorf("scale %d, step %d: non-finite kernel estimate", scales[s], i)
				return r
			}
			r.d[s] = d
		}
		return r
	})

	triples := make([][3]float64, m)
	for idx, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		triples[idx] = r.d
	}
	return triples, nil
}

// RegressionVars строит по обучающему периоду строки (d1, d2, d3, delta),
// где delta = prices[i+1] - prices[i] — реализованное изменение цены.
func RegressionVars(prices []float64, libs [3]Library, scales [3]int) ([][4]float64, error) {
	triples, err := kernelTriples(prices, libs, scales)
	if err != nil {
		return nil, err
	}

	maxScale := scales[2]
	rows := make([][4]float64, len(triples))
	for idx, t := range triples {
		i := idx + maxScale
		rows[idx] = [4]float64{t[0], t[1], t[2], prices[i+1] - prices[i]}
	}
	return rows, nil
}

// FitBlendModel подбирает коэффициенты (w0, w1, w2, w3) методом наименьших
// квадратов. Три ядерные оценки обычно сильно коррелированы, поэтому
// решение идёт через SVD с отсечением ранга, а не через нормальные
// уравнения: их обращение на коллинеарных регрессорах неустойчиво.
func FitBlendModel(rows [][4]float64) (BlendModel, error) {
	const cols = 4
	n := len(rows)
	if n < cols {
		return BlendModel{}, &ErrSingularFit{rows: n, cols: cols}
	}

	a := mat.NewDense(n, cols, nil)
	b := mat.NewVecDense(n, nil)
	for i, r := range rows {
		a.Set(i, 0, 1)
		a.Set(i, 1, r[0])
		a.Set(i, 2, r[1])
		a.Set(i, 3, r[2])
		b.SetVec(i, r[3])
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return BlendModel{}, &ErrSingularFit{rows: n, cols: cols}
	}

	values := svd.Values(nil)
	rank := 0
	for _, s := range values {
		if s > rcondTolerance*values[0] {
			rank++
		}
	}
	if rank < cols {
		return BlendModel{}, &ErrSingularFit{rows: n, cols: cols, rank: rank}
	}

	// w = V * Sigma^-1 * U^T * b
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	w := make([]float64, cols)
	for j := 0; j < cols; j++ {
		coef := mat.Dot(u.ColView(j), b) / values[j]
		for i := 0; i < cols; i++ {
			w[i] += coef * v.At(i, j)
		}
	}

	return BlendModel{W0: w[0], W1: w[1], W2: w[2], W3: w[3]}, nil
}

// cluster.go — кластеризация окон методом k-средних и отбор "эффективных" центров
package internal

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Center — центроид в пространстве признаки+метка: n координат признаков
// плюс последняя координата — метка. Центроид не обязан совпадать
// с каким-либо реальным окном.
type Center []float64

// Features возвращает координаты признаков центроида (без метки).
func (c Center) Features() []float64 { return c[:len(c)-1] }

// Label возвращает координату метки центроида.
func (c Center) Label() float64 { return c[len(c)-1] }

// Library — упорядоченный набор эффективных центров одного масштаба.
type Library []Center

const maxKMeansIterations = 100

// FindClusterCenters кластеризует окна в k кластеров (алгоритм Ллойда)
// и возвращает k центроидов. Инициализация — k-means++, управляемая
// исключительно переданным seed: одинаковые входы и seed дают
// одинаковый результат.
func FindClusterCenters(windows []Window, k int, seed int64) ([]Center, error) {
	if k <= 0 || k > len(windows) {
		return nil, &ErrInsufficientData{op: "cluster", got: len(windows), need: k}
	}

	// Окно разворачивается в точку размерности n+1: признаки + метка.
	points := make([][]float64, len(windows))
	for i, w := range windows {
		p := make([]float64, len(w.Features)+1)
		copy(p, w.Features)
		p[len(w.Features)] = w.Label
		points[i] = p
	}

	rng := rand.New(rand.NewSource(seed))
	centers := seedCenters(points, k, rng)

	assign := make([]int, len(points))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCenter(p, centers)
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Пересчёт центроидов как средних по кластерам.
		// Пустой кластер оставляет центроид на прежнем месте.
		dim := len(points[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for j := range sums {
			sums[j] = make([]float64, dim)
		}
		for i, p := range points {
			floats.Add(sums[assign[i]], p)
			counts[assign[i]]++
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[j]), sums[j])
			centers[j] = sums[j]
		}
	}

	out := make([]Center, k)
	for j, c := range centers {
		out[j] = Center(c)
	}
	return out, nil
}

// seedCenters — инициализация k-means++: первый центр случайный,
// каждый следующий выбирается с вероятностью, пропорциональной
// квадрату расстояния до ближайшего уже выбранного центра.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	first := append([]float64(nil), points[rng.Intn(len(points))]...)
	centers = append(centers, first)

	minDist := make([]float64, len(points))
	for i, p := range points {
		minDist[i] = sqDistance(p, centers[0])
	}

	for len(centers) < k {
		total := 0.0
		for _, d := range minDist {
			total += d
		}
		var next []float64
		if total == 0 {
			// Все оставшиеся точки совпадают с выбранными центрами
			next = points[rng.Intn(len(points))]
		} else {
			r := rng.Float64() * total
			idx := len(points) - 1
			for i, d := range minDist {
				r -= d
				if r <= 0 {
					idx = i
					break
				}
			}
			next = points[idx]
		}
		centers = append(centers, append([]float64(nil), next...))
		for i, p := range points {
			if d := sqDistance(p, next); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centers
}

func nearestCenter(p []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for j, c := range centers {
		if d := sqDistance(p, c); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

func sqDistance(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// ChooseEffectiveCenters отбирает m центров с наибольшим размахом цены
// (peak-to-peak) по координатам признаков — метка в размахе не участвует.
// Сортировка стабильная по возрастанию размаха, берутся последние m,
// поэтому при равных размахах сохраняется исходный порядок центров.
func ChooseEffectiveCenters(centers []Center, m int) (Library, error) {
	if m <= 0 || m > len(centers) {
		return nil, &ErrInsufficientData{op: "effective centers", got: len(centers), need: m}
	}

	ranked := make(Library, len(centers))
	copy(ranked, centers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return featureRange(ranked[i]) < featureRange(ranked[j])
	})
	return ranked[len(ranked)-m:], nil
}

func featureRange(c Center) float64 {
	f := c.Features()
	return floats.Max(f) - floats.Min(f)
}

// window.go — нарезка ценового ряда на окна фиксированной длины
package internal

// Window — окно из n последовательных цен и метка: реализованное
// изменение цены на следующем шаге после окна.
type Window struct {
	Features []float64
	Label    float64
}

// GenerateTimeseries нарезает ряд цен на все возможные окна длины n.
// Для i от 0 до len(prices)-n-1: признаки = prices[i..i+n-1],
// метка = prices[i+n] - prices[i+n-1].
// Возвращает ровно len(prices)-n окон.
func GenerateTimeseries(prices []float64, n int) ([]Window, error) {
	if n <= 0 || n >= len(prices) {
		return nil, &ErrInvalidWindowLength{n: n, seriesLen: len(prices)}
	}

	m := len(prices) - n
	windows := make([]Window, m)
	for i := 0; i < m; i++ {
		// Окна перекрываются, поэтому каждому — своя копия признаков,
		// чтобы исходный ряд оставался неизменяемым.
		feat := make([]float64, n)
		copy(feat, prices[i:i+n])
		windows[i] = Window{
			Features: feat,
			Label:    prices[i+n] - prices[i+n-1],
		}
	}
	return windows, nil
}

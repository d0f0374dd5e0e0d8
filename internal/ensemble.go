// ensemble.go — итоговый сигнал: смешанные предсказания на тестовом периоде
package internal

// PredictSignal применяет обученную модель к каждому пригодному шагу
// тестового периода и возвращает последовательность предсказанных
// изменений цены. signal[0] соответствует шагу i = scales[2] периода,
// длина сигнала равна len(prices) - scales[2] - 1.
func PredictSignal(prices []float64, libs [3]Library, scales [3]int, model BlendModel) ([]float64, error) {
	triples, err := kernelTriples(prices, libs, scales)
	if err != nil {
		return nil, err
	}

	signal := make([]float64, len(triples))
	for idx, t := range triples {
		signal[idx] = model.Apply(t[0], t[1], t[2])
	}
	return signal, nil
}

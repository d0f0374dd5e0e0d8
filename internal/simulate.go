// simulate.go — офлайн-симуляция торговли по предсказанному сигналу
package internal

import (
	"fmt"

	"github.com/samber/lo"
	lop "github.com/samber/lo/parallel"
)

// SimulationResult — итог одного прогона симулятора.
type SimulationResult struct {
	Balance   float64 // итоговый баланс
	Inventory int     // чистая позиция на конец прогона
	Trades    int     // количество исполненных сделок
}

// checkSimulationArgs проверяет выравнивание сигнала с ценами и возвращает
// смещение: signal[0] относится к шагу offset ценового ряда.
func checkSimulationArgs(prices, signal []float64, stride int) (int, error) {
	if stride <= 0 {
		return 0, fmt.Errorf("stride must be positive, got %d", stride)
	}
	offset := len(prices) - 1 - len(signal)
	if len(signal) == 0 || offset < 0 {
		return 0, fmt.Errorf("signal of length %d does not align with %d prices", len(signal), len(prices))
	}
	return offset, nil
}

// SimulateBounded — политика с ограниченной позицией из {-1, 0, +1}.
// На каждом шаге, кратном stride: сигнал выше порога и позиция <= 0 —
// покупка; сигнал ниже минус порога и позиция >= 0 — продажа. В конце
// прогона длинная позиция закрывается по последней цене, короткая
// выкупается по ней же. Симулятор строго последователен: состояние
// позиции переносится между шагами.
func SimulateBounded(prices, signal []float64, threshold float64, stride int) (SimulationResult, error) {
	offset, err := checkSimulationArgs(prices, signal, stride)
	if err != nil {
		return SimulationResult{}, err
	}

	var res SimulationResult
	for i := offset; i < len(prices)-1; i += stride {
		s := signal[i-offset]
		if s > threshold && res.Inventory <= 0 {
			res.Inventory++
			res.Balance -= prices[i]
			res.Trades++
		}
		if s < -threshold && res.Inventory >= 0 {
			res.Inventory--
			res.Balance += prices[i]
			res.Trades++
		}
	}

	// Принудительное закрытие: продаём купленное, выкупаем занятое.
	final := prices[len(prices)-1]
	switch res.Inventory {
	case 1:
		res.Balance += final
	case -1:
		res.Balance -= final
	}
	res.Inventory = 0
	return res, nil
}

// SimulateUnbounded — политика без ограничения позиции: каждый
// подходящий сигнал торгует ещё одну единицу независимо от текущего
// запаса. Позиция в конце не закрывается, возвращается как есть.
func SimulateUnbounded(prices, signal []float64, threshold float64, stride int) (SimulationResult, error) {
	offset, err := checkSimulationArgs(prices, signal, stride)
	if err != nil {
		return SimulationResult{}, err
	}

	var res SimulationResult
	for i := offset; i < len(prices)-1; i += stride {
		s := signal[i-offset]
		if s > threshold {
			res.Inventory++
			res.Balance -= prices[i]
			res.Trades++
		}
		if s < -threshold {
			res.Inventory--
			res.Balance += prices[i]
			res.Trades++
		}
	}
	return res, nil
}

// ThresholdResult — результат ограниченной политики для одного порога.
type ThresholdResult struct {
	Threshold float64
	Result    SimulationResult
	Err       error
}

// SweepThresholds прогоняет ограниченную политику для набора порогов.
// Прогоны независимы (сигнал и цены только читаются), поэтому идут
// параллельно; внутри каждого прогона симуляция последовательна.
func SweepThresholds(prices, signal []float64, thresholds []float64, stride int) []ThresholdResult {
	return lop.Map(thresholds, func(t float64, _ int) ThresholdResult {
		res, err := SimulateBounded(prices, signal, t, stride)
		return ThresholdResult{Threshold: t, Result: res, Err: err}
	})
}

// BestThreshold выбирает порог с наибольшим итоговым балансом.
// Возвращает false, если ни один прогон не завершился успешно.
func BestThreshold(results []ThresholdResult) (ThresholdResult, bool) {
	ok := lo.Filter(results, func(r ThresholdResult, _ int) bool {
		return r.Err == nil
	})
	if len(ok) == 0 {
		return ThresholdResult{}, false
	}
	best := lo.MaxBy(ok, func(a, b ThresholdResult) bool {
		return a.Result.Balance > b.Result.Balance
	})
	return best, true
}

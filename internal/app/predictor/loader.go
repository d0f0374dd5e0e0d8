// loader.go — загрузка ценового фида и разбиение на периоды
package predictor

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"lsm/internal"
)

// LoadPrices загружает ряд цен из файла, выбирая формат по расширению:
// .json — файл со свечами, всё остальное — CSV.
func LoadPrices(filename string) ([]float64, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return LoadPricesFromCandles(filename)
	}
	return LoadPricesCSV(filename)
}

// LoadPricesCSV читает цены из CSV. Поддерживаются строки вида
// "timestamp,price", одиночная колонка цен и ячейки вида "price: 123.45"
// из монговских выгрузок — берётся последняя ячейка строки, из которой
// удаётся извлечь число. Строки без чисел (заголовки) пропускаются.
func LoadPricesCSV(filename string) ([]float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("открытие %s: %w", filename, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // количество колонок может плавать

	var prices []float64
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if price, ok := parsePriceCell(record); ok {
			prices = append(prices, price)
		}
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("в файле %s не найдено ни одной цены", filename)
	}
	return prices, nil
}

// parsePriceCell ищет цену в строке CSV: последняя ячейка, из которой
// парсится число; ячейки "price: X" очищаются от префикса.
func parsePriceCell(record []string) (float64, bool) {
	for i := len(record) - 1; i >= 0; i-- {
		cell := strings.TrimSpace(record[i])
		if idx := strings.IndexByte(cell, ':'); idx >= 0 {
			cell = strings.TrimSpace(cell[idx+1:])
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

// LoadPricesFromCandles читает файл со свечами, сортирует их по времени
// и извлекает цены закрытия.
func LoadPricesFromCandles(filename string) ([]float64, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", filename, err)
	}

	var wrapper internal.GetCandlesResponse
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("разбор JSON %s: %w", filename, err)
	}
	if len(wrapper.Candles) == 0 {
		return nil, fmt.Errorf("в файле %s нет свечей", filename)
	}

	sort.Slice(wrapper.Candles, func(i, j int) bool {
		return wrapper.Candles[i].ParsedTime.Before(wrapper.Candles[j].ParsedTime)
	})

	return internal.ClosePrices(wrapper.Candles), nil
}

// SplitPeriods делит ряд на три примерно равных хронологических периода.
// Остаток от деления распределяется по первым периодам, поэтому длины
// различаются не более чем на единицу.
func SplitPeriods(prices []float64) [3][]float64 {
	var periods [3][]float64
	base := len(prices) / 3
	rem := len(prices) % 3

	start := 0
	for i := 0; i < 3; i++ {
		size := base
		if i < rem {
			size++
		}
		periods[i] = prices[start : start+size]
		start += size
	}
	return periods
}

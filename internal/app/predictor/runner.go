// runner.go — оркестрация: загрузка фида, разбиение, конвейер, отчёт
package predictor

import (
	"fmt"
	"log"
	"time"

	"lsm/internal"
)

// Runner — запуск конвейера предсказания по конфигурации приложения
type Runner struct {
	config   Config
	pipeline internal.PipelineConfig
}

// NewRunner — конструктор для Runner
func NewRunner(config Config, pipeline internal.PipelineConfig) *Runner {
	return &Runner{config: config, pipeline: pipeline}
}

// sweepGrid — сетка порогов вокруг базового значения для перебора
func sweepGrid(base float64) []float64 {
	multipliers := []float64{0.1, 0.25, 0.5, 1, 2, 5, 10}
	grid := make([]float64, len(multipliers))
	for i, m := range multipliers {
		grid[i] = base * m
	}
	return grid
}

// Run выполняет полный прогон: цены -> три периода -> конвейер.
func (r *Runner) Run() (*Report, error) {
	prices, err := LoadPrices(r.config.Filename)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Загружено %d цен из %s", len(prices), r.config.Filename)

	maxScale := r.pipeline.Scales[2]
	// Каждому периоду достанется примерно треть ряда; грубая проверка
	// до запуска, чтобы ошибка была про входной файл, а не про период.
	if len(prices)/3 < maxScale+2 {
		return nil, fmt.Errorf("фид слишком короткий: %d цен на три периода при длинном масштабе %d", len(prices), maxScale)
	}

	periods := SplitPeriods(prices)
	if r.config.Debug {
		log.Printf("🐛 DEBUG: периоды: кластеризация=%d, обучение=%d, тест=%d",
			len(periods[0]), len(periods[1]), len(periods[2]))
		log.Printf("🐛 DEBUG: конфигурация конвейера: %s", r.pipeline.DefaultConfigString())
	}

	startTime := time.Now()
	result, err := internal.Run(periods[0], periods[1], periods[2], r.pipeline)
	if err != nil {
		return nil, fmt.Errorf("конвейер: %w", err)
	}
	executionTime := time.Since(startTime)

	report := &Report{
		InputFile:     r.config.Filename,
		TotalPrices:   len(prices),
		PeriodLengths: [3]int{len(periods[0]), len(periods[1]), len(periods[2])},
		Config:        r.pipeline,
		Result:        result,
		ExecutionTime: executionTime,
	}

	// Перебор порогов по готовому сигналу: сигнал и цены только
	// читаются, так что прогоны идут параллельно.
	if r.config.Sweep {
		report.Sweep = internal.SweepThresholds(
			periods[2], result.Signal, sweepGrid(r.pipeline.Threshold), r.pipeline.Stride)
	}

	return report, nil
}

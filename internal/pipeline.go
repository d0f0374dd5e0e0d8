// pipeline.go — полный конвейер: библиотеки паттернов -> смешивание -> симуляция
package internal

import (
	"errors"
	"fmt"

	lop "github.com/samber/lo/parallel"
)

// PipelineConfig — параметры конвейера. Значения вроде 100 кластеров и
// 20 эффективных центров подобраны эмпирически под конкретный датасет,
// поэтому зашитых констант здесь нет — всё задаёт вызывающая сторона.
type PipelineConfig struct {
	Scales    [3]int  `json:"scales"`    // длины окон: короткий, средний, длинный масштаб
	Clusters  int     `json:"clusters"`  // k — число центроидов на масштаб
	Effective int     `json:"effective"` // m — число эффективных центров, m <= k
	Seed      int64   `json:"seed"`      // seed инициализации k-средних
	Threshold float64 `json:"threshold"` // торговый порог
	Stride    int     `json:"stride"`    // шаг принятия торговых решений
}

func (c *PipelineConfig) Validate() error {
	if c.Scales[0] <= 0 {
		return errors.New("scales must be positive")
	}
	if c.Scales[0] >= c.Scales[1] || c.Scales[1] >= c.Scales[2] {
		return errors.New("scales must be strictly increasing")
	}
	if c.Clusters <= 0 {
		return errors.New("cluster count must be positive")
	}
	if c.Effective <= 0 || c.Effective > c.Clusters {
		return errors.New("effective center count must be in (0, clusters]")
	}
	if c.Threshold <= 0 {
		return errors.New("trading threshold must be positive")
	}
	if c.Stride <= 0 {
		return errors.New("trading stride must be positive")
	}
	return nil
}

func (c *PipelineConfig) DefaultConfigString() string {
	return fmt.Sprintf("scales=%v k=%d m=%d seed=%d t=%g stride=%d",
		c.Scales, c.Clusters, c.Effective, c.Seed, c.Threshold, c.Stride)
}

// PipelineResult — структурированный итог одного прогона конвейера.
type PipelineResult struct {
	Libraries [3]Library       // эффективные центры по масштабам
	Model     BlendModel       // коэффициенты смешивания
	Signal    []float64        // предсказанные изменения цены на тестовом периоде
	Bounded   SimulationResult // политика с позицией из {-1, 0, +1}
	Unbounded SimulationResult // политика без ограничения позиции
}

type libraryResult struct {
	lib Library
	err error
}

// BuildLibraries строит по первому периоду библиотеку эффективных центров
// для каждого масштаба. Масштабы независимы и обрабатываются параллельно;
// seed каждого масштаба смещён на его индекс, чтобы инициализации
// не совпадали, оставаясь воспроизводимыми.
func BuildLibraries(prices []float64, cfg PipelineConfig) ([3]Library, error) {
	var libs [3]Library

	results := lop.Map(cfg.Scales[:], func(scale int, i int) libraryResult {
		windows, err := GenerateTimeseries(prices, scale)
		if err != nil {
			return libraryResult{err: fmt.Errorf("scale %d: %w", scale, err)}
		}
		centers, err := FindClusterCenters(windows, cfg.Clusters, cfg.Seed+int64(i))
		if err != nil {
			return libraryResult{err: fmt.Errorf("scale %d: %w", scale, err)}
		}
		lib, err := ChooseEffectiveCenters(centers, cfg.Effective)
		if err != nil {
			return libraryResult{err: fmt.Errorf("scale %d: %w", scale, err)}
		}
		return libraryResult{lib: lib}
	})

	for i, r := range results {
		if r.err != nil {
			return libs, r.err
		}
		libs[i] = r.lib
	}
	return libs, nil
}

// Run выполняет конвейер целиком на трёх непересекающихся
// хронологических периодах: p1 строит библиотеки паттернов, p2 обучает
// смешивающую модель, p3 даёт сигнал и прогоняется через симулятор
// по обеим политикам.
func Run(p1, p2, p3 []float64, cfg PipelineConfig) (*PipelineResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxScale := cfg.Scales[2]
	// Первому периоду нужно окон не меньше, чем кластеров, даже на
	// самом длинном масштабе; второму и третьему — хотя бы один
	// пригодный шаг после maxScale.
	if len(p1) < maxScale+cfg.Clusters {
		return nil, &ErrInsufficientData{op: "training period", got: len(p1), need: maxScale + cfg.Clusters}
	}
	if len(p2) < maxScale+2 {
		return nil, &ErrInsufficientData{op: "blend period", got: len(p2), need: maxScale + 2}
	}
	if len(p3) < maxScale+2 {
		return nil, &ErrInsufficientData{op: "test period", got: len(p3), need: maxScale + 2}
	}

	libs, err := BuildLibraries(p1, cfg)
	if err != nil {
		return nil, err
	}

	rows, err := RegressionVars(p2, libs, cfg.Scales)
	if err != nil {
		return nil, err
	}
	model, err := FitBlendModel(rows)
	if err != nil {
		return nil, err
	}

	signal, err := PredictSignal(p3, libs, cfg.Scales, model)
	if err != nil {
		return nil, err
	}

	bounded, err := SimulateBounded(p3, signal, cfg.Threshold, cfg.Stride)
	if err != nil {
		return nil, err
	}
	unbounded, err := SimulateUnbounded(p3, signal, cfg.Threshold, cfg.Stride)
	if err != nil {
		return nil, err
	}

	return &PipelineResult{
		Libraries: libs,
		Model:     model,
		Signal:    signal,
		Bounded:   bounded,
		Unbounded: unbounded,
	}, nil
}

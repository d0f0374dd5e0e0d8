package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"lsm/internal"
)

// DefaultPipelineConfig — параметры, подобранные для получасового фида
// биткоина: масштабы 180/360/720 шагов, 100 кластеров, 20 эффективных
// центров, порог 0.0001, решение на каждом шаге.
func DefaultPipelineConfig() internal.PipelineConfig {
	return internal.PipelineConfig{
		Scales:    [3]int{180, 360, 720},
		Clusters:  100,
		Effective: 20,
		Seed:      42,
		Threshold: 0.0001,
		Stride:    1,
	}
}

// LoadPipelineConfig читает конфигурацию конвейера из JSON-файла.
// Отсутствующие поля остаются значениями по умолчанию.
func LoadPipelineConfig(filename string) (internal.PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("чтение файла конфигурации %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("разбор файла конфигурации %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("конфигурация %s: %w", filename, err)
	}
	return cfg, nil
}

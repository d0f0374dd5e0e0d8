package predictor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lsm/internal"
)

// FileSaver — сохранение отчёта в JSON-файл рядом с входными данными
type FileSaver struct{}

// NewFileSaver — конструктор для FileSaver
func NewFileSaver() *FileSaver {
	return &FileSaver{}
}

// savedReport — сериализуемая форма отчёта (без промежуточных библиотек,
// они велики и воспроизводимы по seed)
type savedReport struct {
	InputFile     string                       `json:"input_file"`
	TotalPrices   int                          `json:"total_prices"`
	PeriodLengths [3]int                       `json:"period_lengths"`
	Config        internal.PipelineConfig      `json:"config"`
	Model         internal.BlendModel          `json:"model"`
	Signal        []float64                    `json:"signal"`
	Bounded       internal.SimulationResult    `json:"bounded"`
	Unbounded     internal.SimulationResult    `json:"unbounded"`
	ExecutionMs   int64                        `json:"execution_ms"`
}

// SaveReport — сохраняет отчёт в <имя входного файла>_prediction.json
func (s *FileSaver) SaveReport(report *Report, inputFilename string) error {
	baseName := strings.TrimSuffix(filepath.Base(inputFilename), filepath.Ext(inputFilename))
	outputFile := baseName + "_prediction.json"

	saved := savedReport{
		InputFile:     report.InputFile,
		TotalPrices:   report.TotalPrices,
		PeriodLengths: report.PeriodLengths,
		Config:        report.Config,
		Model:         report.Result.Model,
		Signal:        report.Result.Signal,
		Bounded:       report.Result.Bounded,
		Unbounded:     report.Result.Unbounded,
		ExecutionMs:   report.ExecutionTime.Milliseconds(),
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("сериализация отчёта: %w", err)
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("сохранение %s: %w", outputFile, err)
	}

	fmt.Printf("💾 Отчёт сохранён в %s\n", outputFile)
	return nil
}

package predictor

import (
	"time"

	"lsm/internal"
)

// Report — результат полного прогона с таймингом
type Report struct {
	InputFile     string
	TotalPrices   int
	PeriodLengths [3]int
	Config        internal.PipelineConfig
	Result        *internal.PipelineResult
	Sweep         []internal.ThresholdResult // заполняется при включённом переборе порогов
	ExecutionTime time.Duration
}

// ResultPrinter — интерфейс для вывода результатов
type ResultPrinter interface {
	PrintReport(report *Report)
}

// ResultSaver — интерфейс для сохранения результатов
type ResultSaver interface {
	SaveReport(report *Report, inputFilename string) error
}

// Config — конфигурация приложения
type Config struct {
	Filename   string
	ConfigFile string
	Debug      bool
	SaveResult bool
	Sweep      bool
	CpuProfile string
	MemProfile string
	ProfPort   int
}

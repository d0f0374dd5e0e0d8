package predictor

import (
	"fmt"
	"strings"
	"time"

	"lsm/internal"
)

// ConsolePrinter — вывод отчёта в консоль
type ConsolePrinter struct{}

// NewConsolePrinter — конструктор для ConsolePrinter
func NewConsolePrinter() *ConsolePrinter {
	return &ConsolePrinter{}
}

// PrintReport — выводит итоги прогона: модель, сигнал, обе политики
func (p *ConsolePrinter) PrintReport(report *Report) {
	res := report.Result

	fmt.Println("\n" + strings.Repeat("═", 80))
	fmt.Println("📊 ПРЕДСКАЗАНИЕ ПО ЛАТЕНТНЫМ ПАТТЕРНАМ — РЕЗУЛЬТАТЫ")
	fmt.Println(strings.Repeat("═", 80))
	fmt.Printf("📈 Фид: %s (%d цен; периоды %d/%d/%d)\n",
		report.InputFile, report.TotalPrices,
		report.PeriodLengths[0], report.PeriodLengths[1], report.PeriodLengths[2])
	fmt.Printf("🔧 Масштабы: %v │ Кластеров: %d │ Эффективных центров: %d │ Seed: %d\n",
		report.Config.Scales, report.Config.Clusters, report.Config.Effective, report.Config.Seed)

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("🧮 Модель: w0=%+.6f  w1=%+.6f  w2=%+.6f  w3=%+.6f\n",
		res.Model.W0, res.Model.W1, res.Model.W2, res.Model.W3)
	for i, lib := range res.Libraries {
		fmt.Printf("   Библиотека масштаба %d: %d центров\n", report.Config.Scales[i], len(lib))
	}
	fmt.Printf("📡 Сигнал: %d предсказаний, порог %g, шаг %d\n",
		len(res.Signal), report.Config.Threshold, report.Config.Stride)

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("💰 Политика ±1:        баланс %+.4f │ сделок %d\n",
		res.Bounded.Balance, res.Bounded.Trades)
	fmt.Printf("💰 Без ограничения:    баланс %+.4f │ позиция %+d │ сделок %d\n",
		res.Unbounded.Balance, res.Unbounded.Inventory, res.Unbounded.Trades)

	if len(report.Sweep) > 0 {
		p.printSweep(report.Sweep)
	}

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("⚡ Прогон завершён за %s\n", p.formatDuration(report.ExecutionTime))
}

// printSweep — таблица перебора порогов, лучший порог помечается
func (p *ConsolePrinter) printSweep(sweep []internal.ThresholdResult) {
	fmt.Println(strings.Repeat("─", 80))
	fmt.Println("🔍 ПЕРЕБОР ПОРОГОВ (политика ±1)")
	fmt.Printf("%-14s %-14s %-10s\n", "Порог", "Баланс", "Сделки")

	best, ok := internal.BestThreshold(sweep)
	for _, r := range sweep {
		if r.Err != nil {
			fmt.Printf("%-14g ошибка: %v\n", r.Threshold, r.Err)
			continue
		}
		mark := ""
		if ok && r.Threshold == best.Threshold {
			mark = " 🥇"
		}
		fmt.Printf("%-14g %-+14.4f %-10d%s\n", r.Threshold, r.Result.Balance, r.Result.Trades, mark)
	}
}

// formatDuration — форматирует длительность в читаемый вид
func (p *ConsolePrinter) formatDuration(d time.Duration) string {
	if d > time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
}

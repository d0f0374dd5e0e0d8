// main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime/pprof"

	"lsm/internal/app/predictor"
)

func main() {
	// Парсинг командной строки
	config := parseFlags()

	// Запуск realtime профилирования если указано
	if config.ProfPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", config.ProfPort)
			log.Printf("🚀 HTTP профилирование доступно на http://localhost%s/debug/pprof/", addr)
			if err := http.ListenAndServe(addr, nil); err != nil {
				log.Printf("❌ Ошибка запуска HTTP сервера профилирования: %v", err)
			}
		}()
	}

	// Запуск CPU профилирования если указано
	if config.CpuProfile != "" {
		f, err := os.Create(config.CpuProfile)
		if err != nil {
			log.Fatal("❌ Не удалось создать файл CPU профиля:", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("❌ Не удалось запустить CPU профилирование:", err)
		}
		defer pprof.StopCPUProfile()
	}

	// Конфигурация конвейера: файл или значения по умолчанию
	pipelineCfg, err := predictor.LoadPipelineConfig(config.ConfigFile)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	runner := predictor.NewRunner(config, pipelineCfg)
	report, err := runner.Run()
	if err != nil {
		log.Fatalf("❌ Ошибка прогона: %v", err)
	}

	printer := predictor.NewConsolePrinter()
	printer.PrintReport(report)

	if config.SaveResult {
		saver := predictor.NewFileSaver()
		if err := saver.SaveReport(report, config.Filename); err != nil {
			log.Printf("❌ Ошибка при сохранении отчёта: %v", err)
		}
	}

	// Memory профилирование
	if config.MemProfile != "" {
		f, err := os.Create(config.MemProfile)
		if err != nil {
			log.Fatal("❌ Не удалось создать файл memory профиля:", err)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("❌ Не удалось записать memory профиль:", err)
		}
		f.Close()
	}
}

// parseFlags — парсит командную строку и возвращает конфигурацию
func parseFlags() predictor.Config {
	filename := flag.String("file", "bitcoinprices.csv", "Путь к файлу с ценами (CSV или JSON со свечами)")
	configFile := flag.String("config", "", "Путь к JSON-файлу с конфигурацией конвейера (пусто = значения по умолчанию)")
	debug := flag.Bool("debug", false, "Включить детальное логирование")
	saveResult := flag.Bool("save", false, "Сохранить отчёт в JSON рядом с входным файлом")
	sweep := flag.Bool("sweep", false, "Перебрать сетку порогов по готовому сигналу")
	cpuProfile := flag.String("cpu_profile", "", "Файл для CPU профилирования (пусто = отключено)")
	memProfile := flag.String("mem_profile", "", "Файл для памяти профилирования (пусто = отключено)")
	profPort := flag.Int("prof_port", 0, "Порт для realtime профилирования (0 = отключено)")
	flag.Parse()

	return predictor.Config{
		Filename:   *filename,
		ConfigFile: *configFile,
		Debug:      *debug,
		SaveResult: *saveResult,
		Sweep:      *sweep,
		CpuProfile: *cpuProfile,
		MemProfile: *memProfile,
		ProfPort:   *profPort,
	}
}

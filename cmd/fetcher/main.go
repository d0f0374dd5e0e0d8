// main.go — Сбор исторических цен BTC: по месяцам, с автосохранением после каждого запроса
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"time"
)

const (
	COIN_ID      = "bitcoin"
	VS_CURRENCY  = "usd"
	API_ENDPOINT = "https://api.coingecko.com/api/v3/coins/" + COIN_ID + "/market_chart/range"
	OUTPUT_FILE  = "bitcoinprices.csv"
	MONTH_STEP   = 30 * 24 * time.Hour // ~1 месяц (точное число дней не важно)
	MAX_POINTS   = 500_000
)

var client = &http.Client{
	Timeout: 15 * time.Second,
}

// pricePoint — одна точка фида: метка времени и цена
type pricePoint struct {
	Timestamp int64
	Price     float64
}

// chartResponse — ответ market_chart: пары [миллисекунды, цена]
type chartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

func main() {
	log.Println("🚀 Запуск сборщика цен BTC (месячные блоки + автосохранение)")

	toTime := time.Now().UTC()
	var allPoints []pricePoint
	emptyBlocks := 0

	// Пытаемся продолжить с уже сохранённых данных
	if err := loadExistingPoints(&allPoints); err != nil {
		log.Printf("⚠️ Не удалось загрузить существующие данные из %s: %v", OUTPUT_FILE, err)
	} else if len(allPoints) > 0 {
		log.Printf("🔄 Загружено %d точек из предыдущего сеанса", len(allPoints))
		toTime = time.Unix(allPoints[0].Timestamp, 0).UTC()
	}

	for {
		fromTime := toTime.Add(-MONTH_STEP)

		points, err := fetchBlock(fromTime, toTime)
		if err != nil {
			log.Printf("❌ HTTP ошибка при запросе: %v", err)
			log.Println("💾 Сохраняю накопленные данные перед выходом...")
			savePointsToFile(allPoints)
			log.Fatal("🛑 Прервано из-за сетевой ошибки")
		}

		if len(points) == 0 {
			emptyBlocks++
			log.Printf("ℹ️ Блок %s–%s: 0 точек (%d пустых всего)",
				fromTime.Format("2006-01"), toTime.Format("2006-01"), emptyBlocks)
			if emptyBlocks >= 3 {
				log.Println("✅ Данные закончились — завершаем сбор")
				break
			}
			toTime = fromTime
			time.Sleep(2 * time.Second)
			continue
		}
		emptyBlocks = 0

		// Новые точки старше накопленных — добавляем в начало,
		// сохраняя хронологический порядок (старые → новые)
		allPoints = append(points, allPoints...)

		// Сохраняем всё сразу после успешного запроса
		savePointsToFile(allPoints)

		toTime = time.Unix(points[0].Timestamp, 0).UTC()
		log.Printf("✅ Получено %d точек (всего: %d). Следующий запрос до %s",
			len(points), len(allPoints), toTime.Format("2006-01-02"))

		// Защита от бесконечности
		if len(allPoints) > MAX_POINTS {
			log.Printf("⚠️ Достигнут лимит в %d точек — остановка для защиты", MAX_POINTS)
			break
		}

		// Публичный API не любит частые запросы
		time.Sleep(2 * time.Second)
	}

	log.Printf("🎉 Успешно собрано и сохранено %d точек в файл %s", len(allPoints), OUTPUT_FILE)
}

// fetchBlock запрашивает один временной блок у market_chart API
func fetchBlock(from, to time.Time) ([]pricePoint, error) {
	params := url.Values{}
	params.Set("vs_currency", VS_CURRENCY)
	params.Set("from", strconv.FormatInt(from.Unix(), 10))
	params.Set("to", strconv.FormatInt(to.Unix(), 10))

	req, err := http.NewRequestWithContext(context.Background(), "GET", API_ENDPOINT+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("📥 Запрос: from=%s, to=%s", from.Format("2006-01-02"), to.Format("2006-01-02"))

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("чтение тела ответа: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var response chartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("парсинг JSON: %w", err)
	}

	points := make([]pricePoint, 0, len(response.Prices))
	for _, pair := range response.Prices {
		points = append(points, pricePoint{
			Timestamp: int64(pair[0]) / 1000, // API отдаёт миллисекунды
			Price:     pair[1],
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points, nil
}

// savePointsToFile сохраняет точки в CSV-файл (timestamp,price)
func savePointsToFile(points []pricePoint) error {
	f, err := os.Create(OUTPUT_FILE)
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	for _, p := range points {
		record := []string{
			strconv.FormatInt(p.Timestamp, 10),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("ошибка записи в файл: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("ошибка записи в файл: %w", err)
	}

	log.Printf("💾 Сохранено %d точек в %s", len(points), OUTPUT_FILE)
	return nil
}

// loadExistingPoints загружает уже сохранённые точки из файла
func loadExistingPoints(points *[]pricePoint) error {
	f, err := os.Open(OUTPUT_FILE)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("ошибка парсинга существующих данных: %w", err)
	}

	loaded := make([]pricePoint, 0, len(records))
	for _, record := range records {
		if len(record) != 2 {
			continue
		}
		ts, err1 := strconv.ParseInt(record[0], 10, 64)
		price, err2 := strconv.ParseFloat(record[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		loaded = append(loaded, pricePoint{Timestamp: ts, Price: price})
	}

	*points = loaded
	return nil
}

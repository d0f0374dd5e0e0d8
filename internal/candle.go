// candle.go — разбор ценового фида в формате свечей
package internal

import (
	"encoding/json"
	"strconv"
	"time"
)

type Price float64

// UnmarshalJSON принимает цену и как обычное число, и как объект
// {"units": "...", "nano": ...} — оба формата встречаются в выгрузках.
func (p *Price) UnmarshalJSON(data []byte) error {
	var plain float64
	if err := json.Unmarshal(data, &plain); err == nil {
		*p = Price(plain)
		return nil
	}

	var temp struct {
		Units string `json:"units"`
		Nano  int32  `json:"nano"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	units, err := strconv.ParseInt(temp.Units, 10, 64)
	if err != nil {
		return err
	}
	*p = Price(float64(units) + float64(temp.Nano)/1_000_000_000.0)
	return nil
}

func (p Price) ToFloat64() float64 {
	return float64(p)
}

type Candle struct {
	Open       Price     `json:"open"`
	High       Price     `json:"high"`
	Low        Price     `json:"low"`
	Close      Price     `json:"close"`
	Time       string    `json:"time"`
	IsComplete bool      `json:"isComplete"`
	ParsedTime time.Time `json:"-"` // заполняется при загрузке
}

// UnmarshalJSON разбирает свечу и один раз парсит время,
// чтобы не повторять разбор при каждой сортировке.
func (c *Candle) UnmarshalJSON(data []byte) error {
	type Alias Candle // алиас против бесконечной рекурсии
	aux := (*Alias)(c)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	c.ParsedTime = ParseCandleTime(c.Time)
	return nil
}

// ParseCandleTime пробует известные форматы времени; при неудаче
// возвращает нулевое время.
func ParseCandleTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GetCandlesResponse — обёртка файла со свечами
type GetCandlesResponse struct {
	Candles []Candle `json:"candles"`
}

// ClosePrices извлекает цены закрытия в порядке следования свечей.
func ClosePrices(candles []Candle) []float64 {
	prices := make([]float64, len(candles))
	for i, c := range candles {
		prices[i] = c.Close.ToFloat64()
	}
	return prices
}

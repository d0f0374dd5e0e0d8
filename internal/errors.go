// errors.go — типизированные ошибки конвейера
package internal

import (
	"errors"
	"fmt"
)

// ErrInvalidWindowLength — длина окна несовместима с длиной ряда
type ErrInvalidWindowLength struct {
	n, seriesLen int
}

func (e *ErrInvalidWindowLength) Error() string {
	return fmt.Sprintf("invalid window length %d for series of %d prices", e.n, e.seriesLen)
}

// ErrInsufficientData — данных меньше, чем требует операция
type ErrInsufficientData struct {
	op        string
	got, need int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("%s: insufficient data, got %d, need at least %d", e.op, e.got, e.need)
}

// ErrSingularFit — регрессия недоопределена или вырождена
type ErrSingularFit struct {
	rows, cols, rank int
}

func (e *ErrSingularFit) Error() string {
	if e.rows < e.cols {
		return fmt.Sprintf("regression has %d rows for %d coefficients", e.rows, e.cols)
	}
	return fmt.Sprintf("regression design matrix is rank deficient: rank %d of %d", e.rank, e.cols)
}

var (
	// ErrEmptyLibrary — запрошено предсказание по пустой библиотеке центров
	ErrEmptyLibrary = errors.New("empty center library")

	// ErrDegenerateKernelWeights — все веса ядра обнулились даже после стабилизации
	ErrDegenerateKernelWeights = errors.New("kernel weights vanished after stabilization")
)

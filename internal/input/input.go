// Package input синтезирует аккорд вставки в активное приложение.
package input

import (
	"errors"
	"fmt"
)

// ErrSimulationUnavailable означает, что ОС не разрешает синтетический ввод
// (нет прав доступа или нужного инструмента).
var ErrSimulationUnavailable = errors.New("input: simulation unavailable")

// Paster отправляет аккорд "вставить" (Ctrl+V / Cmd+V) окну с фокусом.
// Какое это окно, Paster не знает и не контролирует.
type Paster interface {
	Paste() error
}

// New создаёт платформо-специфичный Paster.
func New() (Paster, error) {
	return newPaster()
}

func unavailable(err error) error {
	if err == nil {
		return ErrSimulationUnavailable
	}
	return fmt.Errorf("%w: %v", ErrSimulationUnavailable, err)
}

// Package hotkey описывает глобальные горячие клавиши: комбинации, переходы
// и интерфейс регистрации. Реализация для ОС находится в hotkey/system.
package hotkey

// Grab - активная регистрация одной комбинации в ОС.
type Grab interface {
	Release() error
}

// Grabber резервирует комбинации глобально и доставляет переходы клавиш в out.
type Grabber interface {
	Grab(c Combination, out chan<- Transition) (Grab, error)
}

// Pump переводит каналы keydown/keyup в переходы. На один физический
// переход приходится ровно одно событие: повторный keydown от автоповтора
// и keyup без предшествующего keydown отбрасываются.
func Pump[T any](c Combination, down, up <-chan T, out chan<- Transition, stop <-chan struct{}) {
	held := false
	for {
		select {
		case <-stop:
			return
		case _, ok := <-down:
			if !ok {
				return
			}
			if held {
				continue
			}
			held = true
			if !deliver(out, Transition{Combination: c, Edge: Pressed}, stop) {
				return
			}
		case _, ok := <-up:
			if !ok {
				return
			}
			if !held {
				continue
			}
			held = false
			if !deliver(out, Transition{Combination: c, Edge: Released}, stop) {
				return
			}
		}
	}
}

func deliver(out chan<- Transition, t Transition, stop <-chan struct{}) bool {
	select {
	case out <- t:
		return true
	case <-stop:
		return false
	}
}

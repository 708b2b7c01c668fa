// Package icon рисует иконки трея при запуске.
package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const size = 64

var (
	idleColor      = color.RGBA{128, 128, 128, 255} // Серый
	recordingColor = color.RGBA{220, 50, 50, 255}   // Красный

	once      sync.Once
	idle      []byte
	recording []byte
)

// Idle - иконка в состоянии ожидания (серая).
func Idle() []byte {
	once.Do(render)
	return idle
}

// Recording - иконка во время записи (красная).
func Recording() []byte {
	once.Do(render)
	return recording
}

func render() {
	idle = encode(microphone(idleColor))
	recording = encode(microphone(recordingColor))
}

// microphone рисует круг (микрофон упрощённо) с ножкой.
func microphone(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	centerX, centerY := size/2, size/2-6
	radius := 20.0

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x - centerX)
			dy := float64(y - centerY)
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}

	for y := centerY + int(radius); y < centerY+int(radius)+10; y++ {
		for x := centerX - 3; x <= centerX+3; x++ {
			if y < size {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

func encode(img image.Image) []byte {
	var buf bytes.Buffer
	// Кодирование в память не может завершиться ошибкой для RGBA.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

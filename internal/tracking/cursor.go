package tracking

import (
	"github.com/go-vgo/robotgo"
)

// Cursor reads the global mouse position through robotgo.
type Cursor struct{}

func (Cursor) Location() (int, int) {
	return robotgo.Location()
}

// ScreenSize is the size of the main display in pixels.
func ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

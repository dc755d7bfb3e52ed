package hierarchy

import (
	"errors"
	"fmt"
	"strconv"
)

// Zoom is the tree scale in percent. It only affects presentation.
type Zoom int

const (
	MinZoom     Zoom = 50
	MaxZoom     Zoom = 150
	ZoomStep    Zoom = 10
	DefaultZoom Zoom = 100
)

// ClampZoom rounds p to the nearest step and keeps it within range.
func ClampZoom(p int) Zoom {
	step := int(ZoomStep)
	if p >= 0 {
		p = (p + step/2) / step * step
	} else {
		p = (p - step/2) / step * step
	}
	return Zoom(min(max(p, int(MinZoom)), int(MaxZoom)))
}

func (z Zoom) In() Zoom  { return ClampZoom(int(z + ZoomStep)) }
func (z Zoom) Out() Zoom { return ClampZoom(int(z - ZoomStep)) }

func (z Zoom) CanZoomIn() bool  { return z < MaxZoom }
func (z Zoom) CanZoomOut() bool { return z > MinZoom }

// Scale is the zoom as a factor, 1.0 at 100%.
func (z Zoom) Scale() float64 { return float64(z) / 100 }

// Transform is the CSS transform value for the tree container.
func (z Zoom) Transform() string {
	return "scale(" + strconv.FormatFloat(z.Scale(), 'f', 1, 64) + ")"
}

func (z Zoom) String() string { return fmt.Sprintf("%d%%", int(z)) }

// ErrZoomAction is returned by Apply for anything but "in", "out" or "reset".
var ErrZoomAction = errors.New("hierarchy: unknown zoom action")

// Apply performs a named zoom action: "in", "out" or "reset".
func (z Zoom) Apply(action string) (Zoom, error) {
	switch action {
	case "in":
		return z.In(), nil
	case "out":
		return z.Out(), nil
	case "reset":
		return DefaultZoom, nil
	default:
		return z, fmt.Errorf("%w: %q", ErrZoomAction, action)
	}
}

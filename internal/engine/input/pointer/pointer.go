// Package pointer turns pointer gestures into camera deltas.
package pointer

// Kind distinguishes pointer events.
type Kind int

const (
	Press Kind = iota
	Release
	Move
	Wheel
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

// WheelNotch is the wheel delta reported for one notch of a scroll wheel.
const WheelNotch = 120

// Event is a pointer sample in view-local pixels.
type Event struct {
	Kind       Kind
	X, Y       float32
	Button     Button
	WheelDelta float32
}

// Target receives camera deltas from a Controller.
type Target interface {
	HandleDrag(dx, dy float32)
	HandlePan(dx, dy float32)
	HandleZoom(delta float32)
}

// Controller turns pointer events into camera deltas. A press re-anchors
// the previous sample; each move while a button is held forwards only the
// increment since that sample. Primary drags orbit, secondary drags pan,
// the wheel zooms.
type Controller struct {
	target   Target
	prevX    float32
	prevY    float32
	held     Button
	disabled bool
}

// NewController creates a controller feeding target.
func NewController(target Target) *Controller {
	return &Controller{target: target}
}

// SetEnabled turns gesture handling on or off. A disabled controller drops
// every event.
func (c *Controller) SetEnabled(enabled bool) {
	c.disabled = !enabled
	if !enabled {
		c.held = ButtonNone
	}
}

// Handle processes one pointer event.
func (c *Controller) Handle(e Event) {
	if c.disabled {
		return
	}
	switch e.Kind {
	case Press:
		if e.Button == ButtonPrimary || e.Button == ButtonSecondary {
			c.held = e.Button
			c.prevX, c.prevY = e.X, e.Y
		}
	case Release:
		if e.Button == c.held {
			c.held = ButtonNone
		}
	case Move:
		if c.held == ButtonNone {
			return
		}
		dx, dy := e.X-c.prevX, e.Y-c.prevY
		c.prevX, c.prevY = e.X, e.Y
		if c.held == ButtonPrimary {
			c.target.HandleDrag(dx, dy)
		} else {
			c.target.HandlePan(dx, dy)
		}
	case Wheel:
		c.target.HandleZoom(e.WheelDelta)
	}
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testCamera() *Camera {
	c := newCamera(CameraRules{Deadzone: 0.6, Lerp: 0.14}, 30*1024, 20*1024)
	c.SetViewport(10*1024, 8*1024)
	return c
}

func TestCameraSnapClamps(t *testing.T) {
	c := testCamera()

	c.Snap(15*1024, 10*1024)
	x, y := c.Offset()
	assert.Equal(t, Fixed(10*1024), x)
	assert.Equal(t, Fixed(6*1024), y)

	c.Snap(0, 0)
	x, y = c.Offset()
	assert.Equal(t, Fixed(0), x)
	assert.Equal(t, Fixed(0), y)

	c.Snap(30*1024, 20*1024)
	x, y = c.Offset()
	assert.Equal(t, Fixed(20*1024), x)
	assert.Equal(t, Fixed(12*1024), y)
}

func TestCameraDeadzone(t *testing.T) {
	c := testCamera()
	c.Snap(15*1024, 10*1024)

	// Within the middle 60% of the view nothing moves.
	c.Follow(15*1024+2000, 10*1024-1500, referenceFrame)
	x, y := c.Offset()
	assert.Equal(t, Fixed(10*1024), x)
	assert.Equal(t, Fixed(6*1024), y)

	// Past the right edge of the deadzone the target shifts by the overshoot
	// and the view closes lerp of the gap in one reference frame.
	c.Follow(20*1024, 10*1024, referenceFrame)
	x, _ = c.Offset()
	assert.InDelta(t, 10240+2048*0.14, float64(x), 1)
	for i := 0; i < 200; i++ {
		c.Follow(20*1024, 10*1024, referenceFrame)
	}
	x, _ = c.Offset()
	assert.InDelta(t, 12288, float64(x), 1)
}

func TestCameraLerpScalesWithTime(t *testing.T) {
	a, b := testCamera(), testCamera()
	a.Snap(15*1024, 10*1024)
	b.Snap(15*1024, 10*1024)

	a.Follow(20*1024, 10*1024, referenceFrame)
	a.Follow(20*1024, 10*1024, referenceFrame)
	b.Follow(20*1024, 10*1024, 2*referenceFrame)

	assert.InDelta(t, a.x, b.x, 1e-6)
}

func TestCameraClampsAtMapEdge(t *testing.T) {
	c := testCamera()
	c.Snap(29*1024, 19*1024)
	for i := 0; i < 100; i++ {
		c.Follow(30*1024, 20*1024, 100*time.Millisecond)
	}
	x, y := c.Offset()
	assert.Equal(t, Fixed(20*1024), x)
	assert.Equal(t, Fixed(12*1024), y)
}

func TestCameraSmallMap(t *testing.T) {
	c := newCamera(CameraRules{Deadzone: 0.6, Lerp: 0.14}, 5*1024, 5*1024)
	c.SetViewport(10*1024, 8*1024)
	c.Snap(4*1024, 4*1024)
	x, y := c.Offset()
	assert.Equal(t, Fixed(0), x)
	assert.Equal(t, Fixed(0), y)
}

package platform

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/input"
	"github.com/stretchr/testify/assert"
)

func TestCameraCentersAndFlipsY(t *testing.T) {
	r := &Renderer{}
	r.Resize(800, 600)

	tests := []struct {
		world mgl32.Vec2
		wantX float32
		wantY float32
	}{
		{mgl32.Vec2{0, 0}, 400, 300},
		{mgl32.Vec2{100, 0}, 500, 300},
		{mgl32.Vec2{0, 100}, 400, 200},
		{mgl32.Vec2{-400, -300}, 0, 600},
	}

	for _, tt := range tests {
		x, y := r.project(tt.world)
		assert.InDelta(t, tt.wantX, x, 1e-4, "x of %v", tt.world)
		assert.InDelta(t, tt.wantY, y, 1e-4, "y of %v", tt.world)
	}
}

func TestTriangleVerticesPointUp(t *testing.T) {
	v := triangleVertices(mgl32.Vec2{10, 10}, 5)

	assert.InDelta(t, 10, v[0].X(), 1e-4)
	assert.InDelta(t, 15, v[0].Y(), 1e-4)
	assert.Less(t, v[1].Y(), float32(10))
	assert.Less(t, v[2].Y(), float32(10))
	assert.InDelta(t, v[1].Y(), v[2].Y(), 1e-4)
}

func TestKeyMapCoversEveryKey(t *testing.T) {
	mapped := map[input.Key]bool{}
	for _, k := range keyMap {
		mapped[k] = true
	}

	for k := input.KeyA; k <= input.KeyF4; k++ {
		if !mapped[k] {
			t.Errorf("%s has no ebiten key", k)
		}
	}
}

func TestFrameClockMeasuresWallTime(t *testing.T) {
	start := time.Unix(100, 0)
	offsets := []time.Duration{0, 20 * time.Millisecond, 50 * time.Millisecond, 51 * time.Millisecond}
	i := 0
	clock := frameClock{now: func() time.Time {
		now := start.Add(offsets[i])
		i++
		return now
	}}

	nominal := time.Second / 60
	assert.Equal(t, nominal, clock.delta(nominal), "first update has nothing to measure against")
	assert.Equal(t, 20*time.Millisecond, clock.delta(nominal))
	assert.Equal(t, 30*time.Millisecond, clock.delta(nominal))
	assert.Equal(t, time.Millisecond, clock.delta(nominal))
}

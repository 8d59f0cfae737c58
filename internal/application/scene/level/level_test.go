package level

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

func createTestLevel() *config.LevelConfig {
	return &config.LevelConfig{
		Name:       "Main",
		Background: "#102030",
		Props: []config.PropConfig{
			{X: 10, Y: 10, W: 10, H: 10, VX: 60, VY: 0, Color: "#ff0000"},
			{X: 50, Y: 50, W: 4, H: 4},
		},
	}
}

func TestNew(t *testing.T) {
	s, err := New(createTestLevel(), 320, 240)
	require.NoError(t, err)

	assert.Equal(t, "Main", s.Name())
	assert.Equal(t, "Main", s.title, "title falls back to name")
	assert.Equal(t, color.RGBA{16, 32, 48, 255}, s.background)
	require.Len(t, s.Props(), 2)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, s.Props()[0].Color)
	assert.Equal(t, colorProp, s.Props()[1].Color)
}

func TestNew_BadColors(t *testing.T) {
	cfg := createTestLevel()
	cfg.Background = "nope"
	_, err := New(cfg, 320, 240)
	assert.ErrorContains(t, err, "level Main background")

	cfg = createTestLevel()
	cfg.Props[1].Color = "nope"
	_, err = New(cfg, 320, 240)
	assert.ErrorContains(t, err, "level Main prop 1")
}

func TestScene_EnterExit(t *testing.T) {
	s, err := New(createTestLevel(), 320, 240)
	require.NoError(t, err)

	assert.False(t, s.Active())
	s.OnEnter()
	assert.True(t, s.Active())
	s.OnExit()
	assert.False(t, s.Active())
}

func TestScene_UpdateMovesProps(t *testing.T) {
	s, err := New(createTestLevel(), 320, 240)
	require.NoError(t, err)

	require.NoError(t, s.Update(0.5))

	assert.InDelta(t, 40.0, s.Props()[0].X, 1e-9)
	assert.InDelta(t, 10.0, s.Props()[0].Y, 1e-9)
	assert.InDelta(t, 50.0, s.Props()[1].X, 1e-9, "props without velocity stay put")
}

func TestScene_UpdateFrozen(t *testing.T) {
	s, err := New(createTestLevel(), 320, 240)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.Update(0))
	}

	assert.Equal(t, 10.0, s.Props()[0].X, "zero dt freezes the level")
}

func TestBounce(t *testing.T) {
	tests := []struct {
		name        string
		pos, v      float64
		size, limit float64
		wantPos     float64
		wantV       float64
	}{
		{"inside", 50, 10, 10, 100, 50, 10},
		{"past left edge", -5, -10, 10, 100, 5, 10},
		{"past right edge", 95, 10, 10, 100, 85, -10},
		{"bigger than screen", 30, 10, 200, 100, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, v := bounce(tt.pos, tt.v, tt.size, tt.limit)
			assert.Equal(t, tt.wantPos, pos)
			assert.Equal(t, tt.wantV, v)
		})
	}
}

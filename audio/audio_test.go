package audio

import (
	"testing"
	"time"

	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPlayer captures streamers instead of opening a device.
func recordingPlayer(sr int) (*Player, *[]beep.Streamer) {
	var got []beep.Streamer
	p, _ := NewPlayer(config.AudioConfig{SampleRate: sr}, nil)
	p.play = func(s beep.Streamer) { got = append(got, s) }
	return p, &got
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestDisabledPlayer(t *testing.T) {
	p, err := NewPlayer(config.AudioConfig{Enabled: false, SampleRate: 44100}, nil)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Beep(440, time.Second))
	assert.Equal(t, 0, p.Played())
	p.Close()
	p.Close()
}

func TestBeepLength(t *testing.T) {
	p, got := recordingPlayer(8000)
	require.True(t, p.Enabled())

	require.NoError(t, p.Beep(440, 100*time.Millisecond))
	require.Len(t, *got, 1)
	assert.Equal(t, 800, drain((*got)[0]))
	assert.Equal(t, 1, p.Played())
}

func TestBeepAmplitude(t *testing.T) {
	p, got := recordingPlayer(8000)
	require.NoError(t, p.Beep(1000, 50*time.Millisecond))

	buf := make([][2]float64, 400)
	n, _ := (*got)[0].Stream(buf)
	require.Equal(t, 400, n)
	peak := 0.0
	for _, s := range buf {
		peak = max(peak, s[0])
	}
	assert.InDelta(t, gain, peak, 0.01)
}

func TestBeepInvalidFrequency(t *testing.T) {
	p, got := recordingPlayer(8000)

	// above the Nyquist frequency
	assert.Error(t, p.Beep(6000, time.Millisecond))
	assert.Empty(t, *got)
}

func TestBeepAfterClose(t *testing.T) {
	p, got := recordingPlayer(8000)
	p.Close()

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Beep(440, time.Millisecond))
	assert.Empty(t, *got)
}

func TestBeeper(t *testing.T) {
	p, got := recordingPlayer(8000)
	scene := ecs.NewScene(ecs.NewComponentRegistry())
	ecs.SetResource(scene, p)

	b := ecs.Add[*Beeper](scene.Create())
	assert.Equal(t, 440.0, b.Freq)
	b.Freq = 880
	b.Duration = 10 * time.Millisecond

	scene.Tick(0.1)
	assert.Empty(t, *got)

	b.Trigger()
	b.Trigger()
	assert.True(t, b.Pending())
	scene.Tick(0.1)
	assert.False(t, b.Pending())
	require.Len(t, *got, 1)
	assert.Equal(t, 80, drain((*got)[0]))

	scene.Tick(0.1)
	assert.Len(t, *got, 1)
}

func TestBeeperWithoutPlayer(t *testing.T) {
	scene := ecs.NewScene(ecs.NewComponentRegistry())
	b := ecs.Add[*Beeper](scene.Create())

	b.Trigger()
	assert.NotPanics(t, func() { scene.Tick(0.1) })
	assert.False(t, b.Pending())
}

package app

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// ambient is a slow arpeggio, A minor over two octaves.
var ambient = []float64{220.00, 261.63, 329.63, 392.00, 440.00, 392.00, 329.63, 261.63}

// music is the background loop. wanted is the user's choice; the player
// itself is also paused while the window is hidden.
type music struct {
	ctx    *audio.Context
	player *audio.Player
	click  *audio.Player
	wanted bool
	hidden bool
}

func newMusic() (*music, error) {
	ctx := audio.NewContext(sampleRate)
	player, err := newAmbientLoop(ctx)
	if err != nil {
		return nil, fmt.Errorf("background loop: %w", err)
	}
	return &music{
		ctx:    ctx,
		player: player,
		click:  newTone(ctx, 1320, 0.05),
	}, nil
}

// newTone renders a short decaying sine as 16-bit stereo.
func newTone(ctx *audio.Context, freq, durSec float64) *audio.Player {
	n := int(sampleRate * durSec)
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := int16(math.Sin(2*math.Pi*freq*t) * 3000 * math.Exp(-30*t))
		putStereo(buf[i*4:], v)
	}
	return ctx.NewPlayerFromBytes(buf)
}

func newAmbientLoop(ctx *audio.Context) (*audio.Player, error) {
	const noteSec = 0.6
	perNote := int(sampleRate * noteSec)
	buf := make([]byte, perNote*len(ambient)*4)
	for k, freq := range ambient {
		for i := 0; i < perNote; i++ {
			t := float64(i) / sampleRate
			env := math.Min(1, t*20) * math.Exp(-2.5*t)
			s := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*2*t)
			putStereo(buf[(k*perNote+i)*4:], int16(s*1400*env))
		}
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(buf), int64(len(buf)))
	return ctx.NewPlayer(loop)
}

func putStereo(b []byte, v int16) {
	for ch := 0; ch < 2; ch++ {
		b[ch*2] = byte(v)
		b[ch*2+1] = byte(v >> 8)
	}
}

// Toggle flips the user's choice and plays the click.
func (m *music) Toggle() {
	m.click.Rewind()
	m.click.Play()
	m.wanted = !m.wanted
	m.sync()
}

// Play starts the loop if it is not already wanted.
func (m *music) Play() {
	m.wanted = true
	m.sync()
}

// SetHidden pauses the loop while hidden and resumes it afterwards if the
// user had it on.
func (m *music) SetHidden(hidden bool) {
	if hidden == m.hidden {
		return
	}
	m.hidden = hidden
	m.sync()
}

func (m *music) sync() {
	if m.wanted && !m.hidden {
		m.player.Play()
	} else {
		m.player.Pause()
	}
}

func (m *music) Playing() bool { return m.wanted }

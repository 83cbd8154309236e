// Package audio is the engine's thin playback wrapper around ebiten's
// audio package: decode once, play by key. Mixing and device handling stay
// in the backend.
package audio

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the fixed rate every asset is decoded at.
const SampleRate = 44100

// Manager owns the audio context and the decoded players, keyed by the
// name they were loaded under.
type Manager struct {
	ctx     *audio.Context
	players map[string]*audio.Player
	volume  float64
}

// NewManager creates a manager on a fresh audio context. Only one context
// may exist per process, so a game creates exactly one Manager.
func NewManager() *Manager {
	return &Manager{
		ctx:     audio.NewContext(SampleRate),
		players: make(map[string]*audio.Player),
		volume:  1,
	}
}

// Load decodes path from fsys and registers it under key. WAV and OGG are
// supported, chosen by file extension.
func (m *Manager) Load(fsys fs.FS, key, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read audio %s: %w", path, err)
	}

	var player *audio.Player
	switch {
	case strings.HasSuffix(path, ".wav"):
		stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		player, err = m.ctx.NewPlayer(stream)
		if err != nil {
			return fmt.Errorf("failed to create player for %s: %w", path, err)
		}
	case strings.HasSuffix(path, ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		player, err = m.ctx.NewPlayer(stream)
		if err != nil {
			return fmt.Errorf("failed to create player for %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported audio format: %s", path)
	}

	player.SetVolume(m.volume)
	m.players[key] = player
	return nil
}

// Play rewinds and plays the sound registered under key. Unknown keys are
// ignored so a missing effect never breaks the game loop.
func (m *Manager) Play(key string) {
	p, ok := m.players[key]
	if !ok {
		return
	}
	p.Rewind()
	p.Play()
}

// IsPlaying reports whether the sound under key is currently audible.
func (m *Manager) IsPlaying(key string) bool {
	p, ok := m.players[key]
	return ok && p.IsPlaying()
}

// StopAll pauses every player.
func (m *Manager) StopAll() {
	for _, p := range m.players {
		p.Pause()
	}
}

// SetVolume sets the volume of every player, clamped to [0, 1].
func (m *Manager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
	for _, p := range m.players {
		p.SetVolume(v)
	}
}

// Volume returns the current volume.
func (m *Manager) Volume() float64 {
	return m.volume
}

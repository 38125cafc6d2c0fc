// Package audio describes sounds the engine asks its audio collaborator to
// play. Decoding and mixing live behind the Player interface.
package audio

// Source is a request to play a sound file.
type Source struct {
	Path         string
	Volume       float64
	PlaybackRate float64
	// Pan ranges from 0 (left) to 1 (right).
	Pan float64
}

// NewSource returns a source for path at full volume, normal rate, centered.
func NewSource(path string) Source {
	return Source{
		Path:         path,
		Volume:       1.0,
		PlaybackRate: 1.0,
		Pan:          0.5,
	}
}

func (s Source) WithVolume(volume float64) Source {
	s.Volume = volume
	return s
}

func (s Source) WithRate(rate float64) Source {
	s.PlaybackRate = rate
	return s
}

func (s Source) WithPan(pan float64) Source {
	s.Pan = pan
	return s
}

// Player plays sources. Implementations must not block the frame loop.
type Player interface {
	Play(src Source) error
}

// Discard is a Player that drops every source.
var Discard Player = discard{}

type discard struct{}

func (discard) Play(Source) error { return nil }

package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/plus3/warpcore/audio"
	"go.uber.org/zap"
)

const sampleRate = 44100

// AudioPlayer plays sources through ebiten's audio context. Decoded PCM is
// cached per path. Pan and playback rate are not supported by the mixer and
// are ignored.
type AudioPlayer struct {
	log     *zap.Logger
	ctx     *eaudio.Context
	cache   map[string][]byte
	playing []*eaudio.Player
}

// NewAudioPlayer creates the process-wide audio context; call it once.
func NewAudioPlayer(log *zap.Logger) *AudioPlayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &AudioPlayer{
		log:   log.Named("audio"),
		ctx:   eaudio.NewContext(sampleRate),
		cache: make(map[string][]byte),
	}
}

func (a *AudioPlayer) Play(src audio.Source) error {
	pcm, err := a.load(src.Path)
	if err != nil {
		return err
	}

	a.prune()

	p := a.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(src.Volume)
	p.Play()
	a.playing = append(a.playing, p)
	return nil
}

func (a *AudioPlayer) load(path string) ([]byte, error) {
	if pcm, ok := a.cache[path]; ok {
		return pcm, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}

	stream, err := decode(path, raw)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}

	a.cache[path] = pcm
	a.log.Debug("sound cached", zap.String("path", path), zap.Int("bytes", len(pcm)))
	return pcm, nil
}

func decode(path string, raw []byte) (io.Reader, error) {
	r := bytes.NewReader(raw)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported format %q", filepath.Ext(path))
	}
}

// prune closes players that finished.
func (a *AudioPlayer) prune() {
	n := 0
	for _, p := range a.playing {
		if p.IsPlaying() {
			a.playing[n] = p
			n++
			continue
		}
		if err := p.Close(); err != nil {
			a.log.Debug("close player", zap.Error(err))
		}
	}
	clear(a.playing[n:])
	a.playing = a.playing[:n]
}

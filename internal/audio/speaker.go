package audio

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"codeberg.org/snonux/poplingo/internal/language"
)

// PlaybackFailedMessage is the one notification shown for any speech failure
const PlaybackFailedMessage = "Could not play audio. Please try again."

// Synthesizer produces base64 raw PCM for text spoken in lang
type Synthesizer interface {
	Speech(ctx context.Context, text string, lang language.Language) (string, error)
}

// Notifier shows a short message to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Speaker synthesizes and plays text. Failures never propagate: they are
// logged and reported to the user through the notifier.
type Speaker struct {
	synth    Synthesizer
	player   *Player
	notifier Notifier
	logger   *slog.Logger
}

// NewSpeaker wires a synthesizer to a player
func NewSpeaker(synth Synthesizer, player *Player, notifier Notifier, logger *slog.Logger) *Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Speaker{synth: synth, player: player, notifier: notifier, logger: logger}
}

// Say speaks text and returns the started playback, or nil when anything failed
func (s *Speaker) Say(ctx context.Context, text string, lang language.Language) Playback {
	if err := ValidateText(text); err != nil {
		s.fail("invalid speech text", err)
		return nil
	}

	pcm, err := s.synth.Speech(ctx, text, lang)
	if err != nil {
		s.fail("speech synthesis failed", err)
		return nil
	}

	pb, err := s.player.Play(ctx, pcm)
	if err != nil {
		s.fail("audio playback failed", err)
		return nil
	}
	return &reportingPlayback{Playback: pb, speaker: s}
}

func (s *Speaker) fail(msg string, err error) {
	s.logger.Error(msg, slog.Any("error", err))
	s.notifier.Notify(PlaybackFailedMessage)
}

// reportingPlayback reports playback errors that happen after start, such
// as a player that launched but could not reach the sound server
type reportingPlayback struct {
	Playback
	speaker *Speaker
	once    sync.Once
	err     error
}

func (p *reportingPlayback) Wait() error {
	p.once.Do(func() {
		p.err = p.Playback.Wait()
		if p.err != nil {
			p.speaker.fail("playback ended with error", p.err)
		}
	})
	return p.err
}

// Control is one "play" affordance. While its request is loading or playing,
// further triggers on the same control are ignored. Separate controls are independent.
type Control struct {
	speaker *Speaker
	busy    atomic.Bool
}

// NewControl creates a control bound to speaker
func NewControl(speaker *Speaker) *Control {
	return &Control{speaker: speaker}
}

// Busy reports whether the control is loading or playing
func (c *Control) Busy() bool {
	return c.busy.Load()
}

// TriggerAndWait speaks text unless the control is already busy and blocks
// until playback ends. It returns whether a request was started.
func (c *Control) TriggerAndWait(ctx context.Context, text string, lang language.Language) bool {
	if !c.busy.CompareAndSwap(false, true) {
		return false
	}
	defer c.busy.Store(false)

	if pb := c.speaker.Say(ctx, text, lang); pb != nil {
		_ = pb.Wait()
	}
	return true
}

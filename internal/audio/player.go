package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Playback is a started playback; Wait blocks until the output finishes
type Playback interface {
	Wait() error
}

// Sink is an audio output that starts playing a buffer immediately
type Sink interface {
	Start(ctx context.Context, buf *Buffer) (Playback, error)
}

// playerCommand describes how to feed raw float32 samples to an external program
type playerCommand struct {
	name string
	args func(rate, channels int) []string
}

// Players in order of preference. Every one of them reads raw float32le samples from stdin.
var playerCommands = []playerCommand{
	{"paplay", func(rate, ch int) []string {
		return []string{"--raw", "--format=float32le", "--rate=" + strconv.Itoa(rate), "--channels=" + strconv.Itoa(ch)}
	}},
	{"aplay", func(rate, ch int) []string {
		return []string{"-q", "-t", "raw", "-f", "FLOAT_LE", "-r", strconv.Itoa(rate), "-c", strconv.Itoa(ch), "-"}
	}},
	{"ffplay", func(rate, ch int) []string {
		return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-f", "f32le", "-ar", strconv.Itoa(rate), "-ac", strconv.Itoa(ch), "-i", "-"}
	}},
	{"play", func(rate, ch int) []string {
		return []string{"-q", "-t", "raw", "-e", "floating-point", "-b", "32", "-r", strconv.Itoa(rate), "-c", strconv.Itoa(ch), "-"}
	}},
}

// CommandSink plays buffers through an external audio program.
// Each Start spawns its own process, so overlapping calls play concurrently.
type CommandSink struct {
	// Player forces a specific program (paplay, aplay, ffplay or play); empty picks the first found
	Player   string
	lookPath func(string) (string, error)
	command  func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewCommandSink creates a sink using the given player, or auto-detection when empty
func NewCommandSink(player string) *CommandSink {
	return &CommandSink{
		Player:   player,
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
	}
}

func (s *CommandSink) resolve() (playerCommand, string, error) {
	for _, pc := range playerCommands {
		if s.Player != "" && pc.name != s.Player {
			continue
		}
		if path, err := s.lookPath(pc.name); err == nil {
			return pc, path, nil
		}
	}
	if s.Player != "" {
		return playerCommand{}, "", &DeviceError{Player: s.Player, Err: fmt.Errorf("%s not found in PATH", s.Player)}
	}
	return playerCommand{}, "", &DeviceError{Err: ErrNoPlayer}
}

// Start launches the player and streams the samples to it
func (s *CommandSink) Start(ctx context.Context, buf *Buffer) (Playback, error) {
	pc, path, err := s.resolve()
	if err != nil {
		return nil, err
	}

	cmd := s.command(ctx, path, pc.args(buf.SampleRate, buf.Channels)...)
	cmd.Stdin = bytes.NewReader(buf.Float32LE())

	if err := cmd.Start(); err != nil {
		return nil, &DeviceError{Player: pc.name, Err: err}
	}
	return &cmdPlayback{cmd: cmd}, nil
}

type cmdPlayback struct {
	cmd *exec.Cmd
}

func (p *cmdPlayback) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Player decodes speech payloads and hands them to a sink
type Player struct {
	sink Sink
}

// NewPlayer creates a player writing to sink
func NewPlayer(sink Sink) *Player {
	return &Player{sink: sink}
}

// Play decodes base64Pcm and starts it on a fresh output pipeline.
// Nothing is played when decoding fails or the payload is empty.
func (p *Player) Play(ctx context.Context, base64Pcm string) (Playback, error) {
	buf, err := Decode(base64Pcm)
	if err != nil {
		return nil, err
	}
	if len(buf.Samples) == 0 {
		return nil, &DecodeError{Err: ErrEmptyAudio}
	}
	return p.sink.Start(ctx, buf)
}

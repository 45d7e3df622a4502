package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SpeakerOutput plays through the system audio device.
type SpeakerOutput struct {
	rate beep.SampleRate
}

// NewSpeakerOutput initializes the speaker. It must be called once per process.
func NewSpeakerOutput(rate beep.SampleRate, buffer time.Duration) (*SpeakerOutput, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	return &SpeakerOutput{rate: rate}, nil
}

func (o *SpeakerOutput) SampleRate() beep.SampleRate { return o.rate }

func (o *SpeakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Discard drops every voice. It stands in when audio is disabled.
type Discard beep.SampleRate

func (d Discard) SampleRate() beep.SampleRate { return beep.SampleRate(d) }

func (Discard) Play(beep.Streamer) {}

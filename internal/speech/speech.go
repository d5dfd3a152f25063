// Package speech adapts raw audio and text to a remote OpenAI-compatible
// audio API: speech-to-text via the transcription endpoint, text-to-speech
// via the synthesis endpoint.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
)

// maxSynthesisRunes bounds the text sent upstream for synthesis. Longer input
// is cut and marked with an ellipsis.
const maxSynthesisRunes = 1000

// TranscriptionError reports a failed speech-to-text conversion. Status is
// the upstream HTTP status when known, 0 otherwise.
type TranscriptionError struct {
	Status int
	Err    error
}

func (e *TranscriptionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transcription failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SynthesisError reports a failed text-to-speech conversion.
type SynthesisError struct {
	Status int
	Err    error
}

func (e *SynthesisError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("synthesis failed (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("synthesis failed: %v", e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Config selects the remote models and voice.
type Config struct {
	TranscribeModel string
	TTSModel        string
	TTSVoice        string
}

// Client converts between speech and text through a remote audio API.
type Client struct {
	api *openai.Client
	cfg Config
}

// New creates a speech client. baseURL is optional; an empty value keeps the
// API client's default endpoint.
func New(baseURL, apiKey string, cfg Config) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = openai.Whisper1
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = string(openai.TTSModel1)
	}
	if cfg.TTSVoice == "" {
		cfg.TTSVoice = string(openai.VoiceAlloy)
	}
	return &Client{api: openai.NewClientWithConfig(config), cfg: cfg}
}

// Transcribe converts uploaded audio to text. The audio is staged into a
// temp file that is removed on every exit path. Empty detected text counts
// as a failure.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	suffix := filepath.Ext(filename)
	if suffix == "" {
		suffix = ".wav"
	}

	tmp, err := os.CreateTemp("", "interviewd-audio-*"+suffix)
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("stage audio: %w", err)}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			slog.Warn("could not remove temp audio file", "path", tmpPath, "error", err)
		}
	}()

	_, err = io.Copy(tmp, audio)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", &TranscriptionError{Err: fmt.Errorf("stage audio: %w", err)}
	}

	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.cfg.TranscribeModel,
		FilePath: tmpPath,
	})
	if err != nil {
		return "", &TranscriptionError{Status: upstreamStatus(err), Err: err}
	}
	if resp.Text == "" {
		return "", &TranscriptionError{Err: errors.New("no text detected in audio")}
	}
	return resp.Text, nil
}

// Synthesize converts text to encoded audio. Text beyond 1000 runes is
// truncated with a trailing ellipsis before being sent upstream.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(c.cfg.TTSModel),
		Input: truncateForSynthesis(text),
		Voice: openai.SpeechVoice(c.cfg.TTSVoice),
	})
	if err != nil {
		return nil, &SynthesisError{Status: upstreamStatus(err), Err: err}
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, &SynthesisError{Err: fmt.Errorf("read audio stream: %w", err)}
	}
	return audio, nil
}

func truncateForSynthesis(text string) string {
	runes := []rune(text)
	if len(runes) <= maxSynthesisRunes {
		return text
	}
	return string(runes[:maxSynthesisRunes]) + "..."
}

func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	return 0
}

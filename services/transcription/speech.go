package transcription

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"tripflow/config"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	MaxFileSize      = 5 * 1024 * 1024
	AllowedExtension = ".wav"
)

// Transcriber turns recorded audio into text so a spoken trip request can
// enter the pipeline the same way a typed one does.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// GoogleTranscriber recognizes speech with Google Cloud Speech-to-Text.
type GoogleTranscriber struct{}

func NewGoogleTranscriber() *GoogleTranscriber {
	return &GoogleTranscriber{}
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("empty audio payload")
	}
	if language == "" {
		language = "en-US"
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile))
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   16000,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

// ConvertAudio normalizes an uploaded recording to 16kHz mono PCM,
// the format the recognizer is configured for. Requires ffmpeg.
func ConvertAudio(inputPath, outputPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in system PATH: %v", err)
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", "16000",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %s", stderr.String())
	}
	return nil
}

// NullTranscriber is used when Google credentials are not configured.
type NullTranscriber struct{}

func (NullTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	return "", errors.New("speech transcription is not configured")
}

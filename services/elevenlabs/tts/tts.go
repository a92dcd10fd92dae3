package elevenlabs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"radiohost/core"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

// ElevenLabsTTSConfig holds configuration for the ElevenLabs TTS service
type ElevenLabsTTSConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	ModelID string `json:"model_id"`

	// Voice settings
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`

	// SampleRate selects the PCM output format requested from ElevenLabs.
	SampleRate int `json:"sample_rate"`

	// MaxAudioBytes caps accumulation per utterance so a misbehaving
	// stream cannot grow the buffer without bound.
	MaxAudioBytes int `json:"max_audio_bytes"`
}

// ElevenLabsTTS synthesizes one utterance per call over the ElevenLabs
// stream-input WebSocket API. Each call dials a fresh connection for the
// requested voice, streams the text, and accumulates the returned audio
// chunks into a single PCM buffer.
type ElevenLabsTTS struct {
	config ElevenLabsTTSConfig
	logger *core.Logger
}

// Client messages
type (
	// BOS (Beginning of Stream) - sent once on connect
	elBOSMessage struct {
		Text          string          `json:"text"`
		VoiceSettings elVoiceSettings `json:"voice_settings"`
	}

	elVoiceSettings struct {
		Stability       float64 `json:"stability"`
		SimilarityBoost float64 `json:"similarity_boost"`
		Style           float64 `json:"style"`
	}

	// Text chunk message; empty text is EOS
	elTextMessage struct {
		Text string `json:"text"`
	}
)

// Server messages
type (
	// Audio response from ElevenLabs (base64-encoded audio)
	elAudioMessage struct {
		Audio   string `json:"audio"`
		IsFinal bool   `json:"isFinal"`
	}

	// Error response
	elErrorMessage struct {
		Error   string `json:"error"`
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
)

// NewElevenLabsTTS creates a new ElevenLabs TTS service with the provided config
func NewElevenLabsTTS(config ElevenLabsTTSConfig, logger *core.Logger) *ElevenLabsTTS {
	if config.BaseURL == "" {
		config.BaseURL = "wss://api.elevenlabs.io/v1/text-to-speech"
	}
	if config.ModelID == "" {
		config.ModelID = "eleven_multilingual_v2"
	}
	if config.Stability == 0 {
		config.Stability = 0.5
	}
	if config.SimilarityBoost == 0 {
		config.SimilarityBoost = 0.75
	}
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.MaxAudioBytes == 0 {
		config.MaxAudioBytes = 16 << 20
	}
	if logger == nil {
		logger = core.GetLogger()
	}
	return &ElevenLabsTTS{
		config: config,
		logger: logger,
	}
}

// SampleRate returns the PCM sample rate of synthesized audio.
func (e *ElevenLabsTTS) SampleRate() int {
	return e.config.SampleRate
}

// outputFormatString converts the configured sample rate to the
// ElevenLabs output_format parameter
func (e *ElevenLabsTTS) outputFormatString() string {
	switch e.config.SampleRate {
	case 16000:
		return "pcm_16000"
	case 22050:
		return "pcm_22050"
	case 24000:
		return "pcm_24000"
	default:
		return "pcm_44100"
	}
}

// Synthesize converts one utterance into raw PCM with the given voice.
// It blocks until ElevenLabs signals the end of generation.
func (e *ElevenLabsTTS) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if e.config.APIKey == "" {
		return nil, errors.New("ElevenLabs API key is required")
	}
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}
	if voiceID == "" {
		return nil, errors.New("voice ID cannot be empty")
	}

	conn, err := e.establishConnection(ctx, voiceID)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w: %v", core.ErrCollaboratorUnavailable, err)
	}
	defer e.closeConnection(conn)

	if err := e.sendBOS(conn); err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to send BOS: %w", err)
	}
	if err := e.sendJSON(conn, elTextMessage{Text: text + " "}); err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to send text: %w", err)
	}
	// EOS: empty text signals ElevenLabs to finish generation
	if err := e.sendJSON(conn, elTextMessage{Text: ""}); err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to send EOS: %w", err)
	}

	return e.collectAudio(ctx, conn)
}

// establishConnection dials the stream-input endpoint with retry
func (e *ElevenLabsTTS) establishConnection(ctx context.Context, voiceID string) (*websocket.Conn, error) {
	const maxRetries = 3
	const baseDelay = 500 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(attempt)
			e.logger.Infof("ElevenLabs TTS: retrying connection (attempt %d/%d) in %v after error: %v",
				attempt+1, maxRetries, delay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		conn, err := e.dialConnection(ctx, voiceID)
		if err != nil {
			lastErr = err
			continue
		}
		return conn, nil
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, lastErr)
}

// dialConnection performs a single WebSocket dial to ElevenLabs
func (e *ElevenLabsTTS) dialConnection(ctx context.Context, voiceID string) (*websocket.Conn, error) {
	url := fmt.Sprintf("%s/%s/stream-input?model_id=%s&output_format=%s",
		e.config.BaseURL,
		voiceID,
		e.config.ModelID,
		e.outputFormatString(),
	)

	headers := map[string][]string{
		"xi-api-key": {e.config.APIKey},
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, url, headers)
	if err != nil {
		return nil, err
	}

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	return conn, nil
}

// sendBOS sends the Beginning of Stream message with the voice settings
func (e *ElevenLabsTTS) sendBOS(conn *websocket.Conn) error {
	bos := elBOSMessage{
		Text: " ",
		VoiceSettings: elVoiceSettings{
			Stability:       e.config.Stability,
			SimilarityBoost: e.config.SimilarityBoost,
			Style:           e.config.Style,
		},
	}
	return e.sendJSON(conn, bos)
}

// collectAudio reads messages until ElevenLabs signals the final chunk,
// accumulating decoded audio into one buffer. Accumulation is bounded by
// MaxAudioBytes.
func (e *ElevenLabsTTS) collectAudio(ctx context.Context, conn *websocket.Conn) ([]byte, error) {
	var audio []byte

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// A normal close after audio arrived means generation finished
			// without an explicit isFinal marker.
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) && len(audio) > 0 {
				return audio, nil
			}
			return nil, fmt.Errorf("elevenlabs: %w: read: %v", core.ErrCollaboratorUnavailable, err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		chunk, final, err := e.handleTextMessage(message)
		if err != nil {
			return nil, err
		}
		if len(chunk) > 0 {
			if len(audio)+len(chunk) > e.config.MaxAudioBytes {
				return nil, fmt.Errorf("elevenlabs: audio exceeds %d byte cap", e.config.MaxAudioBytes)
			}
			audio = append(audio, chunk...)
		}
		if final {
			if len(audio) == 0 {
				return nil, errors.New("elevenlabs: no audio data received")
			}
			return audio, nil
		}
	}
}

// handleTextMessage parses one JSON message from ElevenLabs and returns
// any decoded audio plus the end-of-generation flag
func (e *ElevenLabsTTS) handleTextMessage(message []byte) ([]byte, bool, error) {
	var errMsg elErrorMessage
	if err := sonic.Unmarshal(message, &errMsg); err != nil {
		return nil, false, fmt.Errorf("elevenlabs: failed to parse message: %w", err)
	}
	if errMsg.Error != "" || errMsg.Message != "" {
		return nil, false, fmt.Errorf("elevenlabs: %s%s (code: %d)", errMsg.Error, errMsg.Message, errMsg.Code)
	}

	var audioMsg elAudioMessage
	if err := sonic.Unmarshal(message, &audioMsg); err != nil {
		return nil, false, fmt.Errorf("elevenlabs: failed to parse audio message: %w", err)
	}

	var chunk []byte
	if audioMsg.Audio != "" {
		decoded, err := base64.StdEncoding.DecodeString(audioMsg.Audio)
		if err != nil {
			return nil, false, fmt.Errorf("elevenlabs: failed to decode audio: %w", err)
		}
		chunk = decoded
	}

	return chunk, audioMsg.IsFinal, nil
}

// sendJSON marshals and sends a JSON message over WebSocket
func (e *ElevenLabsTTS) sendJSON(conn *websocket.Conn, msg interface{}) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// closeConnection sends a close frame and tears the connection down
func (e *ElevenLabsTTS) closeConnection(conn *websocket.Conn) {
	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
}

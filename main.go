package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"radiohost/core"
	"radiohost/factories"
	"radiohost/pipeline"

	"github.com/joho/godotenv"
)

func main() {
	var (
		topic        string
		output       string
		settingsPath string
		workers      int
	)
	flag.StringVar(&topic, "topic", "", "Wikipedia topic to build the dialogue from (required)")
	flag.StringVar(&output, "out", "", "output file path (overrides settings)")
	flag.StringVar(&settingsPath, "settings", "", "path to settings.json")
	flag.IntVar(&workers, "workers", 0, "parallel TTS workers (overrides settings)")
	flag.Parse()

	logger := core.GetLogger()

	if topic == "" {
		logger.Fatal("usage: radiohost -topic <wikipedia title> [-out file.mp3] [-settings settings.json]")
	}

	if err := godotenv.Load(".env.local"); err != nil {
		logger.With(map[string]interface{}{"error": err}).Warn("No .env.local file found or failed to load")
	}

	settings := loadSettings(settingsPath, logger)
	if output != "" {
		settings.Run.OutputPath = output
	}
	if workers > 0 {
		settings.Run.SynthWorkers = workers
	}

	keys := factories.APIKeys{
		OpenAI:     getEnv("OPENAI_API_KEY", ""),
		ElevenLabs: getEnv("ELEVENLABS_API_KEY", ""),
	}

	collaborators, err := factories.BuildCollaborators(settings, keys, logger)
	if err != nil {
		logger.With(map[string]interface{}{"error": err}).Fatal("failed to build collaborators")
	}

	// Ctrl-C aborts between stages and between per-line TTS calls.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Run(ctx, topic, collaborators, settings.Run, logger)
	if err != nil {
		logger.With(map[string]interface{}{"error": err}).Fatal("pipeline run failed")
	}

	logger.Info("done", "output", result.OutputPath, "duration_s", result.Duration.Seconds())
}

// loadSettings loads SettingsConfig from the given path, SETTINGS_PATH,
// or ./settings.json, falling back to defaults when none exists.
func loadSettings(path string, logger *core.Logger) factories.SettingsConfig {
	if path == "" {
		path = getEnv("SETTINGS_PATH", "./settings.json")
	}

	settings, err := factories.SettingsConfigFromFile(path)
	if err != nil {
		logger.With(map[string]interface{}{"path": path, "error": err}).Warn("failed to load settings, using defaults")
		return factories.DefaultSettingsConfig()
	}
	logger.Info("settings loaded", "path", path)
	return settings
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mockview/interviewd/internal/handler"
	"github.com/mockview/interviewd/internal/question"
	"github.com/mockview/interviewd/internal/scoring"
	"github.com/mockview/interviewd/internal/session"
	"github.com/mockview/interviewd/internal/speech"
)

const defaultLLMURL = "https://api.groq.com/openai/v1"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "interviewd",
		Short: "Mock-interview server with LLM answer scoring",
	}

	serve := serveCmd()
	root.AddCommand(serve, checkCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `interviewd --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP interview server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":5000", "HTTP listen address")
	f.StringP("questions", "q", "questions/interview.json", "Path to questions JSON file")
	f.String("static", "static", "Static assets directory (empty disables)")
	f.String("llm-url", defaultLLMURL, "OpenAI-compatible API base URL for scoring")
	f.String("llm-key", "", "API key for the scoring LLM (empty: similarity fallback only)")
	f.String("llm-model", "llama3-70b-8192", "LLM model name")
	f.String("speech-url", "", "OpenAI-compatible API base URL for audio (empty: default)")
	f.String("speech-key", "", "API key for transcription/synthesis (empty: disables speech endpoints)")
	f.String("transcribe-model", "whisper-1", "Speech-to-text model name")
	f.String("tts-model", "tts-1", "Text-to-speech model name")
	f.String("tts-voice", "alloy", "Text-to-speech voice")
	f.Duration("session-ttl", 0, "Drop sessions idle longer than this (0 = never)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a questions file and print a summary",
		RunE:  runCheck,
	}
	f := cmd.Flags()
	f.StringP("questions", "q", "questions/interview.json", "Path to questions JSON file")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance. A .env file in the working directory is honored, and the
// pre-rename key names (GROQ_API_KEY, WHISPER_API_KEY) still work.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("INTERVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("llm-key", "INTERVIEW_LLM_KEY", "GROQ_API_KEY")
	_ = v.BindEnv("speech-key", "INTERVIEW_SPEECH_KEY", "WHISPER_API_KEY")

	v.SetConfigName("interview")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/interviewd")
	v.AddConfigPath("/etc/interviewd")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	questions := question.Load(v.GetString("questions"))

	scorer := scoring.FallbackScorer{Fallback: scoring.SimilarityScorer{}}
	if key := v.GetString("llm-key"); key != "" {
		scorer.Primary = scoring.NewLLMScorer(
			v.GetString("llm-url"),
			key,
			v.GetString("llm-model"),
		)
	} else {
		slog.Warn("LLM key not set, scoring uses the similarity fallback only")
	}

	sessions := session.New(v.GetDuration("session-ttl"))
	defer sessions.Close()

	var speechClient *speech.Client
	if key := v.GetString("speech-key"); key != "" {
		speechClient = speech.New(v.GetString("speech-url"), key, speech.Config{
			TranscribeModel: v.GetString("transcribe-model"),
			TTSModel:        v.GetString("tts-model"),
			TTSVoice:        v.GetString("tts-voice"),
		})
	} else {
		slog.Warn("speech key not set, speech endpoints disabled")
	}

	h := handler.New(questions, scorer, sessions, speechClient)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Routes(r)

	if dir := v.GetString("static"); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(dir)))
		} else {
			slog.Warn("static directory not found, not serving assets", "dir", dir)
		}
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"questions", questions.Count(),
		"llm_url", v.GetString("llm-url"),
		"llm_model", v.GetString("llm-model"),
		"llm_enabled", v.GetString("llm-key") != "",
		"speech_enabled", v.GetString("speech-key") != "",
		"session_ttl", v.GetDuration("session-ttl"),
	)
	return http.ListenAndServe(addr, r)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	path := v.GetString("questions")
	questions := question.Load(path)
	if questions.Count() == 0 {
		return fmt.Errorf("no questions loaded from %s", path)
	}

	seen := make(map[int]bool)
	problems := 0
	for _, q := range questions.All() {
		switch {
		case seen[q.ID]:
			slog.Error("duplicate question id", "id", q.ID)
			problems++
		case q.Prompt == "":
			slog.Error("question has empty prompt", "id", q.ID)
			problems++
		}
		seen[q.ID] = true

		if len(q.Answers) == 0 {
			slog.Warn("question has no reference answers, similarity fallback scores it 0", "id", q.ID)
		}
		for i, ref := range q.Answers {
			if ref.Score < 0 || ref.Score > 100 {
				slog.Error("reference answer score out of range", "id", q.ID, "answer", i+1, "score", ref.Score)
				problems++
			}
		}
	}

	if problems > 0 {
		return fmt.Errorf("%s: %d problem(s) found", path, problems)
	}
	fmt.Printf("%s: %d questions OK\n", path, questions.Count())
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"

	"artifact-chat/internal/attachment"
	"artifact-chat/internal/config"
	"artifact-chat/internal/helper"
	"artifact-chat/internal/llmservice"
	"artifact-chat/internal/markdown"
	"artifact-chat/internal/models"
	"artifact-chat/internal/pipeline"
)

const (
	configFilePath = "./configs/config.yaml"
	wordWrap       = 100
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	filePath := flag.String("file", "", "Read a raw model response from this file (- for stdin)")
	prompt := flag.String("prompt", "", "Send this task to the model")
	attach := flag.String("attach", "", "Comma separated files to attach to the prompt")
	outDir := flag.String("out", "", "Directory for exported artifacts (overrides config)")
	render := flag.Bool("render", false, "Render the remaining text for the terminal")
	withImage := flag.Bool("image", false, "Send the configured image generation preferences")
	stream := flag.Bool("stream", false, "Stream the model reply to stderr while it arrives")
	asJSON := flag.Bool("json", false, "Print the result as JSON")
	flag.Parse()

	if *filePath != "" && *prompt != "" {
		log.Fatal().Msg("Please provide either a response file using the -file flag or a task using the -prompt flag, but not both")
	}
	if *filePath == "" && *prompt == "" {
		log.Fatal().Msg("Please provide a response file using the -file flag or a task using the -prompt flag")
	}

	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env")
	}

	cfg := loadConfig(*configPath)
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	log.Debug().Str("model", cfg.LLM.Model).Str("output_dir", cfg.OutputDir).Msg("Loaded config")

	ctx := context.Background()

	var raw string
	if *filePath != "" {
		raw = readResponseFile(*filePath)
	} else {
		raw = askModel(ctx, cfg, *prompt, *attach, *withImage, *stream)
	}

	conv := markdown.New(cfg.Markdown)
	result, err := pipeline.Process(raw, conv.Convert, cfg.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Error processing response")
	}

	if *asJSON {
		helper.PrettyPrint(result)
		return
	}
	printResult(result, *render)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal().Err(err).Msg("Error loading config")
		}
		log.Debug().Str("path", path).Msg("No config file, using defaults")
		cfg = config.Default()
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return cfg
}

func readResponseFile(path string) string {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Error reading response")
	}
	return string(data)
}

func askModel(ctx context.Context, cfg *config.Config, task, attach string, withImage, stream bool) string {
	requestID, err := helper.GenerateUUID()
	if err != nil {
		log.Fatal().Err(err).Msg("Error generating request id")
	}
	logger := log.With().Str("request_id", requestID).Logger()
	ctx = logger.WithContext(ctx)

	var attachments []models.Attachment
	if attach != "" {
		attachments, err = attachment.LoadAll(strings.Split(attach, ","))
		if err != nil {
			logger.Fatal().Err(err).Msg("Error loading attachments")
		}
	}

	var image *models.ImageSettings
	if withImage {
		image = &cfg.Image
	}

	var onChunk llmservice.StreamFunc
	if stream {
		onChunk = func(_ context.Context, chunk []byte) error {
			_, err := os.Stderr.Write(chunk)
			return err
		}
	}

	start := time.Now()
	resp, err := llmservice.Chat(ctx, cfg, task, attachments, image, onChunk)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error querying model")
	}

	logger.Info().
		Str("selected_model", resp.SelectedModel).
		Str("category", resp.Category).
		Bool("recovered", resp.Recovered).
		Dur("latency", time.Since(start)).
		Msg("Model replied")
	if resp.Reasoning != "" {
		logger.Debug().Str("reasoning", resp.Reasoning).Msg("Model reasoning")
	}
	return resp.Response
}

func printResult(result *pipeline.Result, render bool) {
	for _, out := range result.Outputs {
		switch {
		case out.Artifact.IsDocument():
			fmt.Printf("[document] %s: %d pages -> %s\n", out.Artifact.Title, len(out.Pages), out.Path)
		default:
			fmt.Printf("[%s] %s: %d files -> %s\n", out.Artifact.Type, out.Artifact.Title, len(out.Artifact.Files), out.Path)
			for _, f := range out.Artifact.Files {
				fmt.Printf("  %s (%s)\n", f.Name, f.Language)
			}
		}
	}
	if len(result.Outputs) > 0 {
		fmt.Println()
	}

	if render {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating terminal renderer")
		}
		out, err := r.Render(result.Text)
		if err != nil {
			log.Fatal().Err(err).Msg("Error rendering text")
		}
		fmt.Print(out)
		return
	}

	for _, seg := range result.Segments {
		switch seg.Kind {
		case models.SegmentCode:
			fmt.Printf("```%s\n%s```\n", seg.Language, seg.Content)
		case models.SegmentImage:
			fmt.Printf("[image: %s] %s\n", seg.Alt, seg.Src)
		default:
			fmt.Print(seg.Content)
		}
	}
	fmt.Println()
}

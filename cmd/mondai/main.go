// Package main is the Mondai CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/mondai/internal/annotate"
	"github.com/hyperjump/mondai/internal/config"
	"github.com/hyperjump/mondai/internal/embedding"
	"github.com/hyperjump/mondai/internal/extract"
	"github.com/hyperjump/mondai/internal/generator"
	"github.com/hyperjump/mondai/internal/models"
	"github.com/hyperjump/mondai/internal/render"
	"github.com/hyperjump/mondai/internal/server"
	"github.com/hyperjump/mondai/internal/watcher"
	"github.com/hyperjump/mondai/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/mondai/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used instead.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		// Missing config is fine for local use; run on defaults.
		if errors.Is(err, fs.ErrNotExist) {
			cfg = &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "generate":
		runGenerate()
	case "server":
		runServer()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("mondai version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Annotator annotate.Annotator
	Embedder  embedding.Embedder
	Generator *generator.Generator
	Extractor *extract.Extractor
}

func (c *Components) Close() {
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) *Components {
	annotator := annotate.NewProseAnnotator()

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		if logger != nil {
			logger.Warn("ONNX embedder unavailable, using deterministic fallback", zap.Error(err))
		}
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	genOpts := []generator.Option{}
	if debug && logger != nil {
		genOpts = append(genOpts, generator.WithLogger(logger))
	}
	gen := generator.NewGenerator(annotator, embedder, &cfg.Generate, genOpts...)

	return &Components{
		Annotator: annotator,
		Embedder:  embedder,
		Generator: gen,
		Extractor: extract.NewExtractor(),
	}
}

func runGenerate() {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	questions := fs.Int("questions", 0, "number of questions (default from config)")
	difficultyFlag := fs.String("difficulty", "", "difficulty: Easy, Medium, or Hard (default from config)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	outPath := fs.String("out", "", "write output to file instead of stdout")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: mondai generate [flags] <file>")
		os.Exit(1)
	}
	inputPath := fs.Arg(0)

	format, err := render.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components := initializeComponents(cfg, logger, cfg.Debug)
	defer components.Close()

	diffStr := *difficultyFlag
	if diffStr == "" {
		diffStr = cfg.Generate.DefaultDifficulty
	}
	difficulty, err := models.ParseDifficulty(diffStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	n := *questions
	if n == 0 {
		n = cfg.Generate.DefaultQuestions
	}

	text, err := components.Extractor.Extract(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	quiz, err := components.Generator.Generate(context.Background(), text, n, difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
	if len(quiz.Questions) < n {
		fmt.Fprintf(os.Stderr, "Note: generated %d of %d requested questions\n", len(quiz.Questions), n)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := render.WriteQuiz(out, quiz, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components := initializeComponents(cfg, logger, debugMode)
	defer components.Close()

	srv := server.NewServer(components.Generator, components.Extractor, &cfg.Server, &cfg.Generate, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	questions := fs.Int("questions", 0, "number of questions per quiz (default from config)")
	difficultyFlag := fs.String("difficulty", "", "difficulty for generated quizzes (default from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	roots := cfg.Watch.Directories
	if fs.NArg() > 0 {
		roots = fs.Args()
	}
	if len(roots) == 0 {
		fmt.Println("Usage: mondai watch [flags] <directory> (or set watch.directories in config)")
		os.Exit(1)
	}

	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components := initializeComponents(cfg, logger, debugMode)
	defer components.Close()

	diffStr := *difficultyFlag
	if diffStr == "" {
		diffStr = cfg.Generate.DefaultDifficulty
	}
	difficulty, err := models.ParseDifficulty(diffStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	n := *questions
	if n == 0 {
		n = cfg.Generate.DefaultQuestions
	}

	onDocument := func(path string) {
		text, err := components.Extractor.Extract(path)
		if err != nil {
			logger.Warn("extraction failed", zap.String("path", path), zap.Error(err))
			return
		}
		quiz, err := components.Generator.Generate(context.Background(), text, n, difficulty)
		if err != nil {
			logger.Warn("generation failed", zap.String("path", path), zap.Error(err))
			return
		}
		if len(quiz.Questions) == 0 {
			logger.Info("no questions generated", zap.String("path", path))
			return
		}
		outPath := path + watcher.QuizSuffix
		f, err := os.Create(outPath)
		if err != nil {
			logger.Warn("failed to write quiz", zap.String("path", outPath), zap.Error(err))
			return
		}
		defer f.Close()
		if err := render.WriteQuiz(f, quiz, render.FormatText); err != nil {
			logger.Warn("failed to write quiz", zap.String("path", outPath), zap.Error(err))
			return
		}
		logger.Info("quiz written",
			zap.String("source", path),
			zap.String("quiz", outPath),
			zap.Int("questions", len(quiz.Questions)),
		)
	}

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.NewWatcher(roots, cfg.Watch.Extensions, cfg.Watch.RecursiveOrDefault(), onDocument, watchOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watchSvc.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer watchSvc.Stop()
	watchSvc.SyncExistingFiles()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")
}

func printUsage() {
	fmt.Println(`mondai - Turn documents into multiple-choice quizzes

Usage:
  mondai generate [flags] <file>   Generate a quiz from a document
  mondai server [flags]            Start the HTTP server
  mondai watch [flags] [dir...]    Watch directories and write <file>.quiz.txt
  mondai version                   Show version
  mondai help                      Show this help

Generate Flags:
  --config string      Config file path (default: /usr/local/etc/mondai/config.yaml)
  --questions int      Number of questions (default from config: 5)
  --difficulty string  Easy, Medium, or Hard (default from config: Medium)
  --output string      Output format: text or json (default: text)
  --out string         Write output to file instead of stdout

Server Flags:
  --config string      Config file path
  --debug              Enable debug logging

Watch Flags:
  --config string      Config file path
  --debug              Enable debug logging
  --questions int      Number of questions per quiz
  --difficulty string  Difficulty for generated quizzes

Examples:
  mondai generate notes.pdf
  mondai generate --questions 10 --difficulty Hard chapter.docx
  mondai generate --output json report.txt > quiz.json
  mondai server --debug
  mondai watch ~/Documents/lectures`)
}

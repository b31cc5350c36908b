// Copyright 2026 Acroforms Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/acroforms/formrank"
	"github.com/acroforms/formrank/ai"
	"github.com/acroforms/formrank/core"
	"github.com/acroforms/formrank/indexing"
)

// maxExtractBytes bounds how much of a file is read for text extraction.
const maxExtractBytes = 64 * 1024

func main() {
	app := &cli.App{
		Name:  "formrank",
		Usage: "Local file relevance engine for form uploads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Build the search index from a directory of files",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory to index",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (enables dense embeddings)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per embedding batch",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "rank",
				Usage:  "Rank indexed files against a form query",
				Action: rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Form query text",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Hostname of the form, for history-aware ranking",
					},
					&cli.StringFlag{
						Name:  "accept",
						Usage: "Comma-separated accept patterns (e.g. \"pdf,image/*\")",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of candidates to return",
						Value: 5,
					},
				},
			},
			{
				Name:   "history",
				Usage:  "Record that a file was uploaded to a host",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "path",
						Usage:    "Path of the uploaded file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "host",
						Usage:    "Hostname the file was uploaded to",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	dir := c.String("dir")
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot read directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	var engineOpts []formrank.EngineOption
	if c.String("embedding-model") != "" {
		host := c.String("embedding-host")
		if host == "" {
			host = ai.DefaultConfig().EmbeddingHost
		}
		cfg := ai.NewConfig(
			ai.WithEmbeddingHost(host),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		engineOpts = append(engineOpts, formrank.WithAIConfig(cfg))
	}

	engine, err := formrank.New(c.String("db"), engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	sources, err := collectSources(dir)
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Scanning: %s (%d files)\n\n", dir, len(sources))

	report, err := engine.BuildIndex(ctx, sources,
		indexing.WithBatchSize(c.Int("batch-size")),
		indexing.WithMaxRetries(c.Int("max-retries")),
		indexing.WithRetryBaseDelay(c.Duration("retry-delay")),
		indexing.WithProgressWriter(os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Printf("indexed: %d  skipped: %d  failed: %d  degraded: %d\n",
		report.Indexed, report.Skipped, report.Failed, report.Degraded)
	return nil
}

func rankCommand(c *cli.Context) error {
	engine, err := formrank.New(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	var accept []string
	if raw := c.String("accept"); raw != "" {
		for _, pattern := range strings.Split(raw, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				accept = append(accept, pattern)
			}
		}
	}

	results, err := engine.Rank(context.Background(), core.QueryContext{
		RawText:      c.String("query"),
		Host:         c.String("host"),
		AcceptFilter: accept,
	}, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("no candidates")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%2d. %.4f  %s", i+1, result.FinalScore, result.Path)
		if result.HistoryCount > 0 {
			fmt.Printf("  (uploaded %dx)", result.HistoryCount)
		}
		fmt.Println()
		slog.Debug("signal breakdown",
			"path", result.Path,
			"content", result.Signals.Content,
			"history", result.Signals.History,
			"pathName", result.Signals.PathName,
			"contentOverlap", result.Signals.ContentOverlap,
			"folder", result.Signals.Folder)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	engine, err := formrank.New(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer engine.Close()

	if err := engine.RecordUpload(context.Background(), c.String("path"), c.String("host")); err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// collectSources walks dir and builds a document source for every
// regular file, extracting up to maxExtractBytes of text. Files whose
// content is not valid UTF-8 are indexed by name only.
func collectSources(dir string) ([]indexing.DocumentSource, error) {
	var sources []indexing.DocumentSource

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		mimeType := mimeTypeOf(path)
		source := indexing.DocumentSource{
			Path:     path,
			Name:     d.Name(),
			MIMEType: mimeType,
		}

		if strings.HasPrefix(mimeType, "image/") {
			// Raw bytes let a configured vision describer produce
			// text for the image during the build.
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("skipping unreadable file", "path", path, "err", err)
				return nil
			}
			source.ImageData = data
		} else {
			text, err := extractText(path)
			if err != nil {
				slog.Warn("skipping unreadable file", "path", path, "err", err)
				return nil
			}
			source.Text = text
		}

		sources = append(sources, source)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func extractText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, maxExtractBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	content := buf[:n]

	if !utf8.Valid(content) {
		return "", nil
	}
	return string(content), nil
}

func mimeTypeOf(path string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	return mimeType
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

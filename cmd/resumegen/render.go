package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/stevenAthompson/resume/pkg/content"
	"github.com/stevenAthompson/resume/pkg/history"
	"github.com/stevenAthompson/resume/pkg/mustache"
)

// newRenderCommand creates the "render" subcommand that produces the final
// HTML document.
func newRenderCommand(opts *options) *cobra.Command {
	var (
		contentPath  string
		templatePath string
		outputPath   string
		dataOut      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an HTML document from content and a template",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger
			if templatePath == "" {
				templatePath = opts.config.TemplatePath
			}

			contentData, err := os.ReadFile(contentPath)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			ctx, err := loadRenderContext(contentPath, contentData)
			if err != nil {
				return err
			}

			templateText, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("read template file: %w", err)
			}
			tree, err := mustache.Parse(string(templateText))
			if err != nil {
				return fmt.Errorf("parse template %s: %w", templatePath, err)
			}

			output := mustache.Render(tree, ctx)
			if err := atomic.WriteFile(outputPath, strings.NewReader(output)); err != nil {
				return fmt.Errorf("write output file: %w", err)
			}
			logger.Info("Rendered document",
				slog.String("content", contentPath),
				slog.String("template", templatePath),
				slog.String("output", outputPath),
				slog.Int("bytes", len(output)),
			)

			if dataOut != "" {
				if err := writeContextJSON(dataOut, ctx); err != nil {
					return err
				}
				logger.Info("Wrote extracted context", slog.String("path", dataOut))
			}

			if opts.config.HistoryEnabled {
				recordRender(cmd.Context(), logger, opts.config, history.Entry{
					ContentPath:  contentPath,
					TemplatePath: templatePath,
					OutputPath:   outputPath,
					ContentHash:  history.HashContent(contentData),
					OutputBytes:  len(output),
				})
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentPath, "content", "resume.md", "Path to the Markdown content file (or a .json/.yaml context)")
	cmd.Flags().StringVar(&templatePath, "template", "", "Path to the Mustache HTML template (defaults to the configured template)")
	cmd.Flags().StringVar(&outputPath, "output", "resume_generated.html", "Path to write the rendered HTML")
	cmd.Flags().StringVar(&dataOut, "data-out", "", "Optional path to write the extracted context as JSON")

	return cmd
}

// loadRenderContext turns a content file into a render context. JSON and
// YAML files are loaded as pre-extracted contexts; anything else is treated
// as resume markdown.
func loadRenderContext(path string, data []byte) (mustache.Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		ctx, err := content.LoadContext(path)
		if err != nil {
			return mustache.Value{}, err
		}
		return ctx, nil
	default:
		ctx, err := content.ParseResume(string(data))
		if err != nil {
			return mustache.Value{}, fmt.Errorf("extract content from %s: %w", path, err)
		}
		return ctx, nil
	}
}

// recordRender appends a history entry. History is best-effort: failures are
// logged, never fatal to a render that already succeeded.
func recordRender(ctx context.Context, logger *slog.Logger, config *Config, entry history.Entry) {
	if dir := filepath.Dir(databaseFile(config.HistoryDBPath)); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Warn("Failed to create history directory", "error", err)
			return
		}
	}

	db, err := initDB(config.HistoryDBPath)
	if err != nil {
		logger.Warn("Failed to open history database", "error", err)
		return
	}
	defer func() { _ = db.Close() }()

	if err := history.SetupSchema(db); err != nil {
		logger.Warn("Failed to set up history schema", "error", err)
		return
	}
	store, err := history.NewStore(db)
	if err != nil {
		logger.Warn("Failed to open history store", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record render history", "error", err)
		return
	}
	logger.Debug("Recorded render history entry", slog.String("output", entry.OutputPath))
}

// databaseFile strips the DSN query options from a database path.
func databaseFile(dataSource string) string {
	if i := strings.IndexByte(dataSource, '?'); i >= 0 {
		return dataSource[:i]
	}
	return dataSource
}

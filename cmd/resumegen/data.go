package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/stevenAthompson/resume/pkg/mustache"
)

// newDataCommand creates the "data" subcommand that prints the extracted
// context without rendering anything. Useful for checking what a template
// will see.
func newDataCommand(opts *options) *cobra.Command {
	var (
		contentPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Extract and print the render context as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contentData, err := os.ReadFile(contentPath)
			if err != nil {
				return fmt.Errorf("read content file: %w", err)
			}
			ctx, err := loadRenderContext(contentPath, contentData)
			if err != nil {
				return err
			}

			if outputPath != "" {
				return writeContextJSON(outputPath, ctx)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(ctx.AsAny())
		},
	}

	cmd.Flags().StringVar(&contentPath, "content", "resume.md", "Path to the Markdown content file (or a .json/.yaml context)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Optional path to write the JSON instead of stdout")

	return cmd
}

// writeContextJSON atomically writes an extracted context as indented JSON.
func writeContextJSON(path string, ctx mustache.Value) error {
	data, err := json.MarshalIndent(ctx.AsAny(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write context file: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-landing/document"
	"github.com/goliatone/go-landing/internal/render"
)

type renderFlags struct {
	title    string
	language string
	output   string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title used when the document has no headline")
	cmd.Flags().StringVar(&f.language, "lang", "en", "html lang attribute")
	cmd.Flags().StringVarP(&f.output, "out", "o", "", "write html to this file instead of stdout")
}

func newRenderCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render a section document to a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			html, err := renderFile(args[0], flags)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), flags.output, html)
		},
	}
	flags.bind(cmd)
	return cmd
}

func renderFile(path string, flags renderFlags) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	renderer := render.New(render.WithLanguage(flags.language))
	return renderer.Render(doc, flags.title), nil
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-landing/internal/generation"
	"github.com/goliatone/go-landing/internal/render"
)

func newFallbackCommand() *cobra.Command {
	var (
		description string
		asHTML      bool
	)
	cmd := &cobra.Command{
		Use:   "fallback <title>",
		Short: "Print the personalized fallback document for a title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := generation.Fallback(args[0], description, time.Now())
			if asHTML {
				_, err := cmd.OutOrStdout().Write([]byte(render.Render(doc, args[0])))
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "page description used in the hero copy")
	cmd.Flags().BoolVar(&asHTML, "html", false, "render the fallback to HTML")
	return cmd
}

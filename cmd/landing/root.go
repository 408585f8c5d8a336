package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "landing",
		Short: "Generate, edit and publish landing pages",
		Long: `landing serves the landing page API and editor backend, and offers
offline helpers to render section documents and extract source text.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(),
		newRenderCommand(),
		newWatchCommand(),
		newFallbackCommand(),
		newExtractCommand(),
		newExportCommand(),
	)
	return root
}

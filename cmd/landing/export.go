package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	landing "github.com/goliatone/go-landing"
	landingcmd "github.com/goliatone/go-landing/internal/commands/landing"
)

func newExportCommand() *cobra.Command {
	var (
		configPath string
		dir        string
	)
	cmd := &cobra.Command{
		Use:   "export <landing-page-id>",
		Short: "Write a stored landing page to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid landing page id: %w", err)
			}
			cfg, err := landing.LoadConfig(configPath)
			if err != nil {
				return err
			}
			module, err := landing.New(cfg)
			if err != nil {
				return err
			}
			defer module.Close()
			if _, err := module.Migrate(cmd.Context()); err != nil {
				return err
			}
			handler := module.Container().Handlers().Export
			if err := handler.Execute(cmd.Context(), landingcmd.ExportPageCommand{LandingPageID: id, Dir: dir}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", id, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

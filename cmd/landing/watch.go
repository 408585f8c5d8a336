package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 100 * time.Millisecond

func newWatchCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "watch <document.json>",
		Short: "Re-render a document to HTML whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output == "" {
				return fmt.Errorf("watch requires --out")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watch(ctx, args[0], flags, func(err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "render failed: %v\n", err)
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "rendered %s\n", flags.output)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

// watch renders once, then again after each burst of writes to path. The
// parent directory is watched so editors that replace the file are seen.
func watch(ctx context.Context, path string, flags renderFlags, report func(error)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rerender := func() {
		html, err := renderFile(target, flags)
		if err == nil {
			err = writeOutput(nil, flags.output, html)
		}
		report(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	rerender()
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			report(err)
		case <-pending:
			pending = nil
			rerender()
		}
	}
}

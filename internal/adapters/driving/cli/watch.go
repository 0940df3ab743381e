package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/logger"
)

// settleDelay is how long a file must stay quiet before it is imported,
// so half-written files are not picked up mid-copy.
const settleDelay = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and import new files",
	Long: `Watches a directory and imports every supported file that is
created or modified in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	cmd.Printf("Watching %s (ctrl-c to stop)\n", dir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchLoop(ctx, cmd, watcher)
}

// watchLoop debounces write bursts per path and imports files once they
// settle.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher) error {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if domain.FileTypeForPath(event.Name) == domain.FileTypeUnknown {
				logger.Debug("Ignoring %s: unsupported type", event.Name)
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < settleDelay {
					continue
				}
				delete(pending, path)

				doc, err := ingestService.Import(ctx, path)
				if err != nil {
					cmd.Printf("  %s: %v\n", path, err)
					continue
				}
				cmd.Printf("  %s: %s (%s)\n", doc.ID, doc.Title, doc.Status)
			}
		}
	}
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/core/services"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var (
	watchBuild    buildFlags
	watchWrite    writeFlags
	watchDebounce int
)

var watchCmd = &cobra.Command{
	Use:   "watch <workbook>",
	Short: "Regenerate pages whenever the workbook changes",
	Long: `Run generate once, then again every time the workbook is saved.

Takes the same flags as generate. Pages written by an earlier pass are
skipped unless --force is given, so watch is usually run as:

  wp watch catalogue.xlsx --write --force

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	bindBuildFlags(watchCmd, &watchBuild)
	bindWriteFlags(watchCmd, &watchWrite)
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "Milliseconds to wait after the last change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(getContext(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve workbook path: %w", err)
	}

	req, err := watchBuild.request(cmd, source)
	if err != nil {
		return err
	}
	if err := watchWrite.apply(cmd, &req); err != nil {
		return err
	}

	debounce := time.Duration(watchDebounce) * time.Millisecond
	if appConfig != nil && !cmd.Flags().Changed("debounce") {
		debounce = time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	}

	// Spreadsheet editors save by replacing the file, so watch its directory
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(source)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(source), err)
	}

	out := cmd.OutOrStdout()
	req.OnAction = func(a services.Action) {
		fmt.Fprintln(out, formatAction(a))
	}

	pass := func() {
		resp, err := generateService.Execute(ctx, req)
		if err != nil {
			fmt.Fprintln(out, ui.FormatError(err.Error()))
			return
		}
		if len(resp.MissingColumns) > 0 {
			fmt.Fprintln(out, formatMissingColumns(req.Options.Columns, resp.MissingColumns))
		}
		fmt.Fprintln(out, ui.StyleSuccess.Render(ui.SummaryLine(req.Write, resp.Summary.Written, resp.Summary.Skipped)))
	}

	fmt.Fprintln(out, ui.FormatWatch("Watching "+source))
	fmt.Fprintln(out, ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Fprintln(out)
	pass()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != source {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatInfo("Workbook changed, regenerating..."))
			pass()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)

		case <-ctx.Done():
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.FormatMuted("Watch stopped"))
			return nil
		}
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/services"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

// formatAction renders one line of the per-row action log
func formatAction(a services.Action) string {
	switch a.Kind {
	case services.ActionWrite:
		msg := "WRITE " + a.Path
		if a.Overwrite {
			msg += ui.FormatMuted(" (overwrite)")
		}
		return ui.FormatWrite(msg)
	case services.ActionDryRun:
		return ui.FormatDryRun(fmt.Sprintf("DRY-RUN would write %s (overwrite=%t)", a.Path, a.Overwrite))
	case services.ActionSkipExisting:
		return ui.FormatSkip("SKIP (exists) " + a.Path)
	case services.ActionSkipMissing:
		return ui.FormatSkip(fmt.Sprintf("SKIP (missing id/title) row %d", a.Row))
	case services.ActionInvalid:
		return ui.FormatWarning(fmt.Sprintf("SKIP (invalid) %v", a.Err))
	default:
		return fmt.Sprintf("%s row %d", a.Kind, a.Row)
	}
}

// formatMissingColumns warns about mandatory headers absent from the sheet
func formatMissingColumns(cols domain.Columns, missing []domain.Role) string {
	names := make([]string, len(missing))
	for i, role := range missing {
		names[i] = fmt.Sprintf("%q", cols.Header(role))
	}
	return ui.FormatWarning("Sheet has no column " + strings.Join(names, ", ") + "; every row will be skipped")
}

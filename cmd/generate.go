package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/core/services"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var (
	generateBuild buildFlags
	generateWrite writeFlags
)

var generateCmd = &cobra.Command{
	Use:     "generate <workbook>",
	Short:   "Generate work pages from a spreadsheet",
	Aliases: []string{"gen", "g"},
	Long: `Read a sheet of the workbook and produce one Markdown page per row.

Each row needs an id and a title. Ids are reduced to their digits and
zero-padded, dates become YYYY-MM-DD, tags and attachments are split on
their separators. Pages are named <id>.md inside the output directory.

Runs are dry by default: nothing is written until --write is given.
Existing pages are kept unless --force is given.

Supported workbooks: .xlsx, .xlsm, .csv

Examples:
  wp generate catalogue.xlsx
  wp generate catalogue.xlsx --sheet Works --write
  wp generate catalogue.csv -o content/works --permalink /works/{id}/ --write --force`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	bindBuildFlags(generateCmd, &generateBuild)
	bindWriteFlags(generateCmd, &generateWrite)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req, err := generateBuild.request(cmd, args[0])
	if err != nil {
		return err
	}
	if err := generateWrite.apply(cmd, &req); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	req.OnAction = func(a services.Action) {
		fmt.Fprintln(out, formatAction(a))
	}

	resp, err := generateService.Execute(ctx, req)
	if resp != nil && len(resp.MissingColumns) > 0 {
		fmt.Fprintln(out, formatMissingColumns(req.Options.Columns, resp.MissingColumns))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.StyleSuccess.Render(ui.SummaryLine(req.Write, resp.Summary.Written, resp.Summary.Skipped)))
	if !req.Write && resp.Summary.Written > 0 {
		fmt.Fprintln(out, ui.FormatMuted("Nothing was written. Re-run with --write to create the pages."))
	}

	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets <workbook>",
	Short: "List the sheets of a workbook",
	Long: `List the sheets of a workbook. The active sheet, which generate
reads when --sheet is not given, is marked with *.

A CSV file has a single sheet named after the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheets,
}

func runSheets(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	sheets, err := workbookReader.Sheets(ctx, args[0])
	if err != nil {
		return err
	}
	active, err := workbookReader.ActiveSheet(ctx, args[0])
	if err != nil {
		return err
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "#", Align: "right"},
		{Header: "SHEET"},
		{Header: "ACTIVE", Align: "center"},
	})
	for i, name := range sheets {
		mark := ""
		if name == active {
			mark = "*"
			name = ui.StyleBold.Render(name)
		}
		table.AddRow([]string{strconv.Itoa(i + 1), name, mark})
	}

	fmt.Print(table.Render())
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/core/services"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var (
	checkOutputDir  string
	checkAssetsBase string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate generated pages",
	Long: `Re-read every page in the output directory and report problems:

  - front matter that is missing or does not parse
  - missing title, date or work_id
  - a work_id that does not match the file name
  - dates that are not YYYY-MM-DD
  - supplement links outside <assets-base>/<id>/files/
  - permalinks used by more than one page

Attachment files themselves are not looked up.
Exits non-zero when any error-level problem is found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOutputDir, "output-dir", "o", "works", "Directory of generated pages")
	checkCmd.Flags().StringVar(&checkAssetsBase, "assets-base", "/assets/works", "Expected URL prefix of attachment links")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	outputDir, assetsBase := checkOutputDir, checkAssetsBase
	if appConfig != nil {
		if !cmd.Flags().Changed("output-dir") {
			outputDir = appConfig.OutputDir
		}
		if !cmd.Flags().Changed("assets-base") {
			assetsBase = appConfig.AssetsBase
		}
	}
	if err := useOutputDir(outputDir); err != nil {
		return err
	}

	if !appWorkspace.Exists() {
		fmt.Println(ui.FormatWarning("Output directory does not exist: " + appWorkspace.OutputDir))
		return nil
	}

	resp, err := checkService.Execute(ctx, services.CheckRequest{AssetsBase: assetsBase})
	if err != nil {
		return err
	}

	for _, issue := range resp.Issues {
		msg := fmt.Sprintf("%s: %s", issue.ID, issue.Message)
		if issue.Severity == services.SeverityError {
			fmt.Println(ui.FormatError(msg))
		} else {
			fmt.Println(ui.FormatWarning(msg))
		}
	}

	errorCount := resp.Errors()
	warnCount := len(resp.Issues) - errorCount

	fmt.Println()
	summary := fmt.Sprintf("Checked %d page(s): %d error(s), %d warning(s)", resp.Checked, errorCount, warnCount)
	if errorCount > 0 {
		fmt.Println(ui.FormatError(summary))
		return fmt.Errorf("%d problem(s) found in %s", errorCount, appWorkspace.OutputDir)
	}
	fmt.Println(ui.FormatSuccess(summary))

	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/pkg/normalize"
	"github.com/kamal-hamza/wp-cli/pkg/ui"
)

var (
	previewBuild buildFlags
	previewPlain bool
	previewCopy  bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <workbook> [id]",
	Short: "Show the page a row would produce",
	Long: `Render the page for one row without writing anything.

With an id, the first row whose normalized id matches is shown; the id
is normalized the same way, so "361", "361.0" and "00361" are equal.
Without an id, a fuzzy finder lists every valid row.

Use --copy to put the rendered page on the clipboard.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPreview,
}

func init() {
	bindBuildFlags(previewCmd, &previewBuild)
	previewCmd.Flags().BoolVar(&previewPlain, "plain", false, "Disable syntax highlighting")
	previewCmd.Flags().BoolVarP(&previewCopy, "copy", "c", false, "Copy the rendered page to the clipboard")
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	req, err := previewBuild.request(cmd, args[0])
	if err != nil {
		return err
	}

	var doc *domain.Document
	if len(args) == 2 {
		id, err := normalize.NormalizeID(args[1], req.Options.IDWidth)
		if err != nil {
			return err
		}
		doc, err = generateService.Render(ctx, req, id)
		if err != nil {
			return err
		}
	} else {
		works, err := generateService.Works(ctx, req)
		if err != nil {
			return err
		}
		if len(works) == 0 {
			fmt.Println(ui.FormatWarning("No rows with an id and a title."))
			return nil
		}

		idx, err := fuzzyfinder.Find(
			works,
			func(i int) string { return works[i].ID + "  " + works[i].Title },
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return works[i].Document().Render()
			}),
		)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			return err
		}
		doc = works[idx].Document()
	}

	content := doc.Render()
	fmt.Println(ui.FormatMuted("# " + doc.Filename()))
	if previewPlain || (appConfig != nil && !appConfig.SyntaxHighlighting) {
		fmt.Print(content)
	} else {
		style := "monokai"
		if appConfig != nil {
			style = appConfig.PreviewStyle
		}
		fmt.Print(highlightPage(content, style))
	}

	if previewCopy {
		if err := clipboard.WriteAll(content); err != nil {
			fmt.Println(ui.FormatWarning("Could not copy to clipboard: " + err.Error()))
		} else {
			fmt.Println(ui.FormatSuccess("Copied " + doc.Filename() + " to clipboard"))
		}
	}

	return nil
}

// highlightPage applies syntax highlighting to a rendered page
func highlightPage(content, styleName string) string {
	lexer := lexers.Get("markdown")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}

	return buf.String()
}

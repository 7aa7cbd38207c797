package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/services"
)

// now is the clock used for the default page date
var now = time.Now

// buildFlags controls how rows become pages
type buildFlags struct {
	sheet           string
	idCol           string
	titleCol        string
	dateCol         string
	tagsCol         string
	attachmentsCol  string
	notesCol        string
	layout          string
	permalink       string
	assetsBase      string
	tagsSep         string
	attachmentsSep  string
	idWidth         int
	defaultDate     string
	continueOnError bool
}

// writeFlags controls where and whether pages are written
type writeFlags struct {
	outputDir string
	write     bool
	force     bool
}

func bindBuildFlags(cmd *cobra.Command, f *buildFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.sheet, "sheet", "", "Sheet to read (default: the active sheet)")
	flags.StringVar(&f.idCol, "id-col", "id", "Header of the id column")
	flags.StringVar(&f.titleCol, "title-col", "title", "Header of the title column")
	flags.StringVar(&f.dateCol, "date-col", "date", "Header of the date column")
	flags.StringVar(&f.tagsCol, "tags-col", "tags", "Header of the tags column")
	flags.StringVar(&f.attachmentsCol, "attachments-col", "attachments", "Header of the attachments column")
	flags.StringVar(&f.notesCol, "notes-col", "notes", "Header of the notes column")
	flags.StringVar(&f.layout, "layout", "theme", "Layout for rows without one")
	flags.StringVar(&f.permalink, "permalink", "", "Permalink template, {id} is replaced (e.g. /works/{id}/)")
	flags.StringVar(&f.assetsBase, "assets-base", "/assets/works", "URL prefix for attachment links")
	flags.StringVar(&f.tagsSep, "tags-sep", ",", "Separator between tags")
	flags.StringVar(&f.attachmentsSep, "attachments-sep", ";", "Separator between attachments")
	flags.IntVar(&f.idWidth, "id-width", 5, "Zero-padded width of normalized ids")
	flags.StringVar(&f.defaultDate, "default-date", "", "Date for rows without one, YYYY-MM-DD (default: today)")
	flags.BoolVar(&f.continueOnError, "continue-on-error", false, "Skip rows with malformed ids or dates instead of stopping")
}

func bindWriteFlags(cmd *cobra.Command, f *writeFlags) {
	flags := cmd.Flags()
	flags.StringVarP(&f.outputDir, "output-dir", "o", "works", "Directory for generated pages")
	flags.BoolVarP(&f.write, "write", "w", false, "Write pages (default is a dry run)")
	flags.BoolVarP(&f.force, "force", "f", false, "Overwrite existing pages")
}

// request builds a generate request from flags, falling back to config
// values for every flag not set on the command line
func (f *buildFlags) request(cmd *cobra.Command, source string) (services.GenerateRequest, error) {
	changed := cmd.Flags().Changed

	pick := func(name, flagValue, configValue string) string {
		if changed(name) || appConfig == nil {
			return flagValue
		}
		return configValue
	}

	opts := domain.BuildOptions{
		Columns: domain.Columns{
			ID:          f.idCol,
			Title:       f.titleCol,
			Date:        f.dateCol,
			Tags:        f.tagsCol,
			Attachments: f.attachmentsCol,
			Notes:       f.notesCol,
		},
		IDWidth:             f.idWidth,
		TagSeparator:        f.tagsSep,
		AttachmentSeparator: f.attachmentsSep,
		DefaultLayout:       f.layout,
		PermalinkTemplate:   f.permalink,
		AssetsBase:          f.assetsBase,
	}
	req := services.GenerateRequest{
		Source:          source,
		Sheet:           f.sheet,
		ContinueOnError: f.continueOnError,
	}

	if cfg := appConfig; cfg != nil {
		opts.Columns = domain.Columns{
			ID:          pick("id-col", f.idCol, cfg.IDColumn),
			Title:       pick("title-col", f.titleCol, cfg.TitleColumn),
			Date:        pick("date-col", f.dateCol, cfg.DateColumn),
			Tags:        pick("tags-col", f.tagsCol, cfg.TagsColumn),
			Attachments: pick("attachments-col", f.attachmentsCol, cfg.AttachmentsColumn),
			Notes:       pick("notes-col", f.notesCol, cfg.NotesColumn),
		}
		opts.TagSeparator = pick("tags-sep", f.tagsSep, cfg.TagSeparator)
		opts.AttachmentSeparator = pick("attachments-sep", f.attachmentsSep, cfg.AttachmentSeparator)
		opts.DefaultLayout = pick("layout", f.layout, cfg.Layout)
		opts.PermalinkTemplate = pick("permalink", f.permalink, cfg.Permalink)
		opts.AssetsBase = pick("assets-base", f.assetsBase, cfg.AssetsBase)
		req.Sheet = pick("sheet", f.sheet, cfg.Sheet)
		if !changed("id-width") {
			opts.IDWidth = cfg.IDWidth
		}
		if !changed("continue-on-error") {
			req.ContinueOnError = cfg.ContinueOnError
		}
	}

	if opts.IDWidth <= 0 {
		return req, fmt.Errorf("--id-width must be positive, got %d", opts.IDWidth)
	}
	if opts.TagSeparator == "" || opts.AttachmentSeparator == "" {
		return req, fmt.Errorf("separators must not be empty")
	}
	if strings.TrimSpace(opts.DefaultLayout) == "" {
		opts.DefaultLayout = "theme"
	}

	opts.DefaultDate = now().Format(time.DateOnly)
	if f.defaultDate != "" {
		if _, err := time.Parse(time.DateOnly, f.defaultDate); err != nil {
			return req, fmt.Errorf("--default-date must be YYYY-MM-DD, got %q", f.defaultDate)
		}
		opts.DefaultDate = f.defaultDate
	}

	req.Options = opts
	return req, nil
}

// apply copies the write policy into req, falling back to config values
func (f *writeFlags) apply(cmd *cobra.Command, req *services.GenerateRequest) error {
	changed := cmd.Flags().Changed

	outputDir := f.outputDir
	req.Write = f.write
	req.Force = f.force
	if cfg := appConfig; cfg != nil {
		if !changed("output-dir") {
			outputDir = cfg.OutputDir
		}
		if !changed("write") {
			req.Write = cfg.Write
		}
		if !changed("force") {
			req.Force = cfg.Force
		}
	}

	return useOutputDir(outputDir)
}

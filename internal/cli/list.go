package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/browser"
	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/detail"
	"github.com/rshade/holocron/internal/tui"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

type listOptions struct {
	filter      string
	output      string
	details     bool
	concurrency int
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "Print the items of a category",
		Long: `Fetches a category and prints its items, optionally filtered by a
case-insensitive substring of the title.

A failed fetch prints the error entry and exits non-zero.`,
		Example: `  # All films
  holocron list films

  # People whose name contains "sky", with details
  holocron list people --filter sky --details

  # Machine-readable output
  holocron list planets --output json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: categoryNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalog.ParseCategory(args[0])
			if err != nil {
				return err
			}
			return runList(cmd, id, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "only show items whose title contains this text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	cmd.Flags().BoolVar(&opts.details, "details", false, "load the detail summary of every listed item")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", detail.DefaultConcurrency,
		"maximum detail requests in flight with --details")

	return cmd
}

func runList(cmd *cobra.Command, id catalog.CategoryID, opts listOptions) error {
	if opts.output != outputTable && opts.output != outputJSON {
		return fmt.Errorf("unsupported output format: %s", opts.output)
	}

	ctx := cmd.Context()
	svc := newServices(config.GetGlobalConfig())

	loadErr := svc.controller.Load(ctx, id)
	svc.controller.SetFilter(opts.filter)

	if loadErr == nil && opts.details {
		if err := loadDetails(cmd, svc, id, opts.concurrency); err != nil {
			return err
		}
	}

	vm := svc.controller.Render()
	var err error
	if opts.output == outputJSON {
		err = renderListJSON(cmd.OutOrStdout(), svc.controller, vm)
	} else {
		err = renderListTable(cmd.OutOrStdout(), vm, styledOutput(tui.DetectOutputMode(false, false, false)))
	}
	if err != nil {
		return err
	}

	if loadErr != nil {
		logger.Error().Ctx(ctx).Err(loadErr).Str("category", id.String()).Msg("list failed")
		return loadErr
	}
	return nil
}

// loadDetails fetches detail for the rendered items. Failures stay inline
// as the item's detail text.
func loadDetails(cmd *cobra.Command, svc *services, id catalog.CategoryID, concurrency int) error {
	entries := svc.controller.Render().Items()
	items := make([]*catalog.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, svc.controller.Item(e.Index))
	}

	failed, err := svc.loader.LoadAll(cmd.Context(), id, items, concurrency)
	if failed > 0 {
		logger.Warn().Ctx(cmd.Context()).Int("failed", failed).Int("total", len(items)).
			Msg("some details could not be loaded")
	}
	return err
}

// listDocument is the JSON shape of list output.
type listDocument struct {
	Category string          `json:"category"`
	Filter   string          `json:"filter,omitempty"`
	Status   string          `json:"status"`
	Message  string          `json:"message,omitempty"`
	Items    []browser.Entry `json:"items"`
}

func renderListJSON(w io.Writer, c *browser.Controller, vm browser.ViewModel) error {
	doc := listDocument{
		Category: c.Current().String(),
		Filter:   c.Query(),
		Status:   browser.StatusItem.String(),
		Items:    vm.Items(),
	}
	if vm.Placeholder() {
		doc.Status = vm.Entries[0].Status.String()
		doc.Message = vm.Entries[0].Title
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// styledOutput reports whether table output may carry lipgloss styling.
func styledOutput(mode tui.OutputMode) bool {
	switch mode {
	case tui.OutputModeStyled, tui.OutputModeInteractive:
		return true
	case tui.OutputModePlain:
		return false
	default:
		return false
	}
}

func renderListTable(w io.Writer, vm browser.ViewModel, styled bool) error {
	if vm.Placeholder() {
		text := vm.Entries[0].Title
		if styled {
			if vm.Entries[0].Status == browser.StatusError {
				text = tui.CriticalStyle.Render(text)
			} else {
				text = tui.SubtitleStyle.Render(text)
			}
		}
		_, err := fmt.Fprintln(w, text)
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tUID\tINFO")
	for _, e := range vm.Entries {
		uid := e.UID
		if uid == "" {
			uid = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Title, uid, tui.CardSubtitle(e))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Styling is applied per line after alignment so escape codes do not
	// skew the column widths.
	header, rows, _ := strings.Cut(buf.String(), "\n")
	if styled {
		header = tui.TitleStyle.Render(header)
	}
	_, err := fmt.Fprintf(w, "%s\n%s", header, rows)
	return err
}

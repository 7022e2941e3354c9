package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/internal/gallery"
)

func browseCommand(ctx *Context) *cobra.Command {
	var (
		scrolls  int
		criteria gallery.Criteria
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Simulate a viewer scrolling through the gallery",
		Long: `Load the first page, then reach the end of the page repeatedly so the
scroll trigger loads more until the gallery stops offering pages or the
scroll count runs out. Prints the view state after every step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.open()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			view := gallery.NewView(ctx.paginator(s, false), ctx.Config.Gallery.PageSize)
			view.SetTag(criteria.Tag)
			view.SetSearchQuery(criteria.Query)
			if err := view.FetchInitial(cmd.Context()); err != nil {
				return err
			}
			printState(cmd, view)

			var loadErrs []error
			trigger := gallery.ForView(view, gallery.WithErrorHandler(func(err error) {
				loadErrs = append(loadErrs, err)
			}))
			defer trigger.Close()

			for i := 0; i < scrolls && view.HasMore(); i++ {
				// the sentinel is in view once the viewer reaches the bottom
				trigger.Proximity(0)
				trigger.Wait()
				printState(cmd, view)
			}
			if err := errors.Join(loadErrs...); err != nil {
				return err
			}

			fmt.Fprintf(out, "visible %d of %d loaded, tags: %v\n", //nolint:errcheck // terminal output
				len(view.Visible()), len(view.Loaded()), view.AvailableTags())
			return writeTable(out, view.Visible())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&scrolls, "scrolls", 3, "Number of times to reach the bottom of the page")
	flags.StringVar(&criteria.Tag, "tag", "", "Active tag filter")
	flags.StringVarP(&criteria.Query, "query", "q", "", "Active search query")
	return cmd
}

func printState(cmd *cobra.Command, view *gallery.View) {
	st := view.State()
	fmt.Fprintf(cmd.OutOrStdout(), "loaded=%d next_page=%d has_more=%t\n", st.Loaded, st.Cursor, st.HasMore) //nolint:errcheck // terminal output
}

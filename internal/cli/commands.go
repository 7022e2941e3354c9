package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/gallery"
)

func listCommand(ctx *Context) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.open()
			if err != nil {
				return err
			}

			var photos []photo.Photo
			if s.local != nil {
				photos = s.local.AdminList(cmd.Context())
			} else if photos, err = s.store.List(cmd.Context()); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), photos)
			}
			return writeTable(cmd.OutOrStdout(), photos)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")
	return cmd
}

func addCommand(ctx *Context) *cobra.Command {
	var (
		req    photo.CreatePhotoRequest
		url    string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record pointing at an existing image URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.SetDefaults()
			if err := req.Validate(); err != nil {
				return err
			}

			return ctx.mutate(func(s *session) error {
				p := req.NewPhoto(strconv.FormatInt(time.Now().UnixMilli(), 10), url)
				p.Width, p.Height = width, height
				if err := p.Validate(); err != nil {
					return err
				}

				if s.local != nil {
					created, err := s.local.Create(cmd.Context(), p)
					if err != nil {
						return err
					}
					p = created
				} else if err := s.store.Add(cmd.Context(), p); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), p.ID) //nolint:errcheck // terminal output
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "Image URL (required)")
	flags.StringVar(&req.Title, "title", "", "Title")
	flags.StringVar(&req.Description, "description", "", "Description")
	flags.StringVar(&req.Tags, "tags", "", "Comma separated tags")
	flags.StringVar(&req.Photographer, "photographer", "", "Photographer")
	flags.StringVar(&req.Location, "location", "", "Location")
	flags.IntVar(&width, "width", 0, "Width in pixels")
	flags.IntVar(&height, "height", 0, "Height in pixels")
	_ = cmd.MarkFlagRequired("url") //nolint:errcheck // flag is defined above

	return cmd
}

func removeCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(func(s *session) error {
				return s.store.Remove(cmd.Context(), args[0])
			})
		},
	}
}

func seedCommand(ctx *Context) *cobra.Command {
	var (
		force bool
		count int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with sample records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.mutate(func(s *session) error {
				if s.local != nil {
					wrote, err := s.local.Initialize(cmd.Context(), force)
					if err != nil {
						return err
					}
					if !wrote {
						fmt.Fprintln(cmd.OutOrStdout(), "local store already initialized") //nolint:errcheck // terminal output
					}
					return nil
				}

				existing, err := s.store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(existing) > 0 && !force {
					fmt.Fprintf(cmd.OutOrStdout(), "store already holds %d records\n", len(existing)) //nolint:errcheck // terminal output
					return nil
				}
				for _, p := range gallery.Synthesize(len(existing), count) {
					if err := s.store.Add(cmd.Context(), p); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even when records exist")
	cmd.Flags().IntVar(&count, "count", 20, "Number of sample records for the data file")
	return cmd
}

func pageCommand(ctx *Context) *cobra.Command {
	var (
		cursor    int
		storeOnly bool
		criteria  gallery.Criteria
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Print one gallery page as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.open()
			if err != nil {
				return err
			}

			page, err := ctx.paginator(s, storeOnly).LoadPage(cmd.Context(), cursor, ctx.Config.Gallery.PageSize)
			if err != nil {
				return err
			}
			if !criteria.IsZero() {
				page.Records = gallery.Filter(page.Records, criteria)
			}
			return writeJSON(cmd.OutOrStdout(), page)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&cursor, "page", 1, "Page number, starting at 1")
	flags.BoolVar(&storeOnly, "store-only", false, "Page stored records only, without seed or synthetic fill")
	flags.StringVar(&criteria.Tag, "tag", "", "Only records with this tag")
	flags.StringVarP(&criteria.Query, "query", "q", "", "Only records whose title or description match")
	return cmd
}

// paginator builds the gallery paginator over the opened store
func (c *Context) paginator(s *session, storeOnly bool) *gallery.Paginator {
	if storeOnly {
		return gallery.NewPaginator(gallery.NewCatalog(s.store, nil, c.Logger), gallery.WithoutSynthesis())
	}
	return gallery.NewPaginator(
		gallery.NewCatalog(s.store, gallery.Seed(), c.Logger),
		gallery.WithCeiling(c.Config.Gallery.Ceiling),
	)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, photos []photo.Photo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tSIZE\tURL") //nolint:errcheck // flushed below
	for _, p := range photos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dx%d\t%s\n", //nolint:errcheck // flushed below
			p.ID, p.Title, strings.Join(p.Tags, ","), p.Width, p.Height, p.URL)
	}
	return tw.Flush()
}

// Package cli implements galleryctl, the admin and browsing tool for a
// gallery data file.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/browserstore"
	"photo-gallery/internal/platform/jsondb"
)

// Context carries what every command needs
type Context struct {
	Config *config.Config
	Logger *observability.Logger

	// LocalState, when set, points at a snapshot of the client-side local
	// store instead of the server's JSON data file
	LocalState string
}

// RootCommand creates the galleryctl command tree
func RootCommand(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "galleryctl",
		Short:         "Manage and browse a photo gallery",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&ctx.Config.DataFile, "data-file", ctx.Config.DataFile, "Path to the JSON data file")
	flags.StringVar(&ctx.LocalState, "local-state", "", "Operate on a local-store snapshot file instead of the data file")
	flags.IntVar(&ctx.Config.Gallery.PageSize, "page-size", ctx.Config.Gallery.PageSize, "Records per page")
	flags.IntVar(&ctx.Config.Gallery.Ceiling, "ceiling", ctx.Config.Gallery.Ceiling, "Loaded count at which paging stops")

	rootCmd.AddCommand(
		listCommand(ctx),
		addCommand(ctx),
		removeCommand(ctx),
		seedCommand(ctx),
		pageCommand(ctx),
		browseCommand(ctx),
	)
	return rootCmd
}

// session is an opened record store plus the hook that persists it
type session struct {
	store photo.Store
	local *browserstore.LocalStore
	save  func() error
}

// open returns the store selected by the flags
func (c *Context) open() (*session, error) {
	if c.LocalState == "" {
		return &session{
			store: jsondb.New(c.Config.DataFile, c.Logger),
			save:  func() error { return nil },
		}, nil
	}

	storage := browserstore.NewStorage()
	if err := storage.LoadFile(c.LocalState); err != nil {
		return nil, fmt.Errorf("failed to load local state: %w", err)
	}
	local := browserstore.NewLocalStore(storage, c.Logger)
	return &session{
		store: local,
		local: local,
		save:  func() error { return storage.SaveFile(c.LocalState) },
	}, nil
}

// mutate opens the store, runs fn and persists the result
func (c *Context) mutate(fn func(*session) error) error {
	s, err := c.open()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save local state: %w", err)
	}
	return nil
}

// ExitCode maps command errors to process exit codes
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, photo.ErrInvalidPhotoData), errors.Is(err, photo.ErrInvalidPagination):
		return 2
	case errors.Is(err, photo.ErrPhotoNotFound):
		return 3
	default:
		return 1
	}
}

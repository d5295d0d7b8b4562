package cli

import (
	"github.com/spf13/cobra"

	"todo-cli/internal/store"
)

func newRecentCmd(app *App) *cobra.Command {
	var limit int
	var prune bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened or saved lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.CatalogPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, err := store.OpenCatalog(cmd.Context(), path)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer cat.Close()

			out := map[string]any{}
			if prune {
				n, err := cat.Prune(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				out["pruned"] = n
			}
			lists, err := cat.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if lists == nil {
				lists = []store.CatalogEntry{}
			}
			out["data"] = lists
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of lists (0 = all)")
	cmd.Flags().BoolVar(&prune, "prune", false, "Forget lists whose file no longer exists")
	return cmd
}

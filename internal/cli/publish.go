package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"todo-cli/internal/publish"
)

func newPublishCmd(app *App) *cobra.Command {
	var v viewOpts
	var toDir string
	var kind string
	var unfinished bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export a list as Markdown, HTML or text (derived, not canonical)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadList(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := v.apply(app, c); err != nil {
				return writeErr(cmd, err)
			}
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			pf, err := publish.ParseFormat(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := app.formatter(true)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.Write(c, toDir, publish.WriteOptions{
				Format:         pf,
				UnfinishedOnly: unfinished,
				Overwrite:      overwrite,
				Formatter:      f,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger.Info("published list", "files", res.Written)
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	v.bind(cmd)
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&kind, "as", "md", "Export format (md|html|txt)")
	cmd.Flags().BoolVar(&unfinished, "unfinished", false, "Leave out completed entries")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	return cmd
}

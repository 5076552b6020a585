package cli

import (
	"fmt"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/client/board"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/spf13/cobra"
)

// runBoard is a test seam for board.Run.
var runBoard = board.Run

func (a *App) boardCommand() *cobra.Command {
	var status, tags, mode string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive task board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			f := board.Filter{
				Tags: agenda.ParseTagList(tags),
				Mode: models.TagMode(mode),
			}
			switch f.Mode {
			case "", models.TagModeAny, models.TagModeAll:
			default:
				return fmt.Errorf("invalid tag mode %q, want any or all", mode)
			}
			if status != "" {
				f.Status = models.Status(parseStatus(status))
				if f.Status != models.StatusAll && !f.Status.Valid() {
					return fmt.Errorf("invalid status %q", status)
				}
			}
			return runBoard(cmd.Context(), a.client, a.config.RequestTimeout, f)
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "only this status (todo, doing, done or all)")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "comma-separated tag filter")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "tag match mode: any (default) or all")
	return cmd
}

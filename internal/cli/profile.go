package cli

import (
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			if err := app.Garden.FetchGarden(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(ProfileView{
				User:      app.Session.User(),
				Garden:    app.Garden.Garden(),
				Inventory: app.Garden.Inventory(),
			})
			return nil
		},
	}
}

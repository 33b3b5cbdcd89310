package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archdocs/internal/host"
	"github.com/ziadkadry99/archdocs/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [page-id]",
	Short: "Browse the pages in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg)
		if err != nil {
			return err
		}

		h := host.New(reg, resolveHome(cfg, reg))
		if len(args) == 1 {
			err = h.Navigate(args[0])
		} else {
			err = h.NavigateHome()
		}
		if err != nil {
			return err
		}
		return tui.Run(h)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

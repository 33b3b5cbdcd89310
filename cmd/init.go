package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/archdocs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize archdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure archdocs for your project and generates a .archdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankd/bankd/internal/config"
)

var configExampleCmd = &cobra.Command{
	Use:   "config-example [path]",
	Short: "Write an example configuration file",
	Long:  `Write an example bankd.toml with all settings at their documented values.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPath()
		if len(args) > 0 {
			path = args[0]
		}
		if err := config.SaveExampleConfig(path); err != nil {
			return err
		}
		fmt.Printf("Wrote example configuration to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configExampleCmd)
}

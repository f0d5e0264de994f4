package cli

import "github.com/spf13/cobra"

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Pretty-print the current state of every tracked entity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return hns.Dump(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

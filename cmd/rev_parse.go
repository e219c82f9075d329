package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var revParseCmd = &cobra.Command{
	Use:          "rev-parse <revision>",
	Short:        "Print the hash a revision resolves to",
	Long:         `Resolve HEAD (following at most one "ref:" redirect) or a full hash and print it.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runRevParse,
}

func init() {
	rootCmd.AddCommand(revParseCmd)
}

func runRevParse(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}

	hash, err := session.ResolveRevision(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

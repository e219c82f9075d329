package cmd

import (
	"fmt"

	"github.com/KostasZigo/mygit/internal/objects"
	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-t | -s | -p | -e) <object>",
	Short: "Provide type, size or content of a repository object",
	Long: `Read a loose object by its full hash and print information about it.

Examples:
  # Print the object kind (tree, commit, blob or tag)
  mygit cat-file -t 3b18e512dba79e4c8300dd08aeb37f8e728b8dad

  # Print the object body
  mygit cat-file -p 3b18e512dba79e4c8300dd08aeb37f8e728b8dad`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runCatFile,
}

var (
	typeFlag   bool
	sizeFlag   bool
	printFlag  bool
	existsFlag bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&typeFlag, "type", "t", false, "Show the object kind")
	catFileCmd.Flags().BoolVarP(&sizeFlag, "size", "s", false, "Show the declared object size")
	catFileCmd.Flags().BoolVarP(&printFlag, "pretty", "p", false, "Print the object body")
	catFileCmd.Flags().BoolVarP(&existsFlag, "exists", "e", false, "Exit with an error if the object does not exist")
	catFileCmd.MarkFlagsMutuallyExclusive("type", "size", "pretty", "exists")
	catFileCmd.MarkFlagsOneRequired("type", "size", "pretty", "exists")
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument, received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// runCatFile reads the object and prints the requested view of it.
func runCatFile(cmd *cobra.Command, args []string) error {
	hash, err := objects.ParseHash(args[0])
	if err != nil {
		return err
	}

	session, err := openSession()
	if err != nil {
		return err
	}

	if existsFlag {
		if !session.Store().Exists(hash) {
			return fmt.Errorf("object %s does not exist", hash)
		}
		return nil
	}

	object, err := session.Object(hash)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case typeFlag:
		fmt.Fprintln(out, object.Kind)
	case sizeFlag:
		fmt.Fprintln(out, object.Size)
	case printFlag:
		fmt.Fprint(out, object.Data)
	}
	return nil
}

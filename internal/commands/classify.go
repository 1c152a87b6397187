package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClassifyCommand() *cobra.Command {
	var repoDir string
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "classify <code> [description]",
		Short: "Show which category an account falls into and why",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}
			defer ws.close()

			svc, err := ws.loadRules(rulesPath)
			if err != nil {
				return err
			}

			code := args[0]
			desc := ""
			if len(args) > 1 {
				desc = args[1]
			}

			out := cmd.OutOrStdout()
			rule, ok := svc.Classifier().Match(code, desc)
			if !ok {
				fmt.Fprintln(out, "Unclassified (no rule matched)")
				return nil
			}
			fmt.Fprintf(out, "%s (rule: %s)\n", rule.Category.Name(), rule)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule table (.yaml or .csv), overrides the workspace table")

	return cmd
}

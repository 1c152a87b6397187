package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the classification rule table",
	}
	rulesCmd.AddCommand(newRulesListCommand(), newRulesValidateCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	var repoDir string
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rules in evaluation order",
		Args:  cobra.NoArgs,
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

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tKIND\tPATTERN\tCATEGORY\tSECTION")
			for i, r := range svc.All() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, r.Kind, r.Pattern, r.Category.Name(), r.Category.Section())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule table (.yaml or .csv)")

	return cmd
}

func newRulesValidateCommand() *cobra.Command {
	var repoDir string
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Report unreachable, duplicate or malformed rules",
		Args:  cobra.NoArgs,
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

			out := cmd.OutOrStdout()
			problems := svc.Validate()
			for _, p := range problems {
				fmt.Fprintln(out, p.Error())
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) in rule table", len(problems))
			}
			fmt.Fprintf(out, "%d rules OK\n", len(svc.All()))
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule table (.yaml or .csv)")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Inspect and update hierarchy repositories",
}

var reposStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local state of each hierarchy level",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		statuses, err := mgr.Status(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tURL\tPATH\tSTATE")
		for _, s := range statuses {
			state := "up to date"
			if s.Err != nil {
				state = s.Err.Error()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Name, s.URL, s.Path, state)
		}
		return w.Flush()
	},
}

var reposUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Bring every hierarchy level up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		statuses, err := mgr.Sync(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range statuses {
			switch {
			case s.Err != nil:
				fmt.Printf("! %s: %v\n", s.Name, s.Err)
			case s.Updated:
				fmt.Printf("✓ %s updated\n", s.Name)
			default:
				fmt.Printf("  %s already current\n", s.Name)
			}
		}
		return nil
	},
}

func init() {
	reposCmd.AddCommand(reposStatusCmd, reposUpdateCmd)
	rootCmd.AddCommand(reposCmd)
}

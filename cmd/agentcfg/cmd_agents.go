package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the known agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "AGENT\tSOURCE DIR\tOUTPUT DIR")
		for _, name := range mgr.Agents() {
			ag, err := mgr.Agent(name)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", ag.Name, ag.DirName, ag.OutputDir)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(agentsCmd)
}

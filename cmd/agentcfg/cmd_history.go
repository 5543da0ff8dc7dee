package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/agentcfg/journal"
)

var (
	flagHistoryAgent string
	flagHistoryLimit int
	flagHistoryKeep  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past merge runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List merge runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		runs, err := mgr.Runs().List(journal.ListFilter{
			Agent: flagHistoryAgent,
			Limit: flagHistoryLimit,
		})
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tAGENT\tWHEN\tSTATUS\tFILES\tWARNINGS")
		for _, run := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
				run.ID, run.Agent, run.StartedAt.Format(time.RFC3339),
				run.Status, len(run.Files), run.Warnings)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one merge run in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		run, err := mgr.Runs().Get(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Run:      %s\n", run.ID)
		fmt.Printf("Agent:    %s\n", run.Agent)
		fmt.Printf("Started:  %s\n", run.StartedAt.Format(time.RFC3339))
		fmt.Printf("Duration: %s\n", run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))
		fmt.Printf("Status:   %s\n", run.Status)
		if run.Warnings > 0 {
			fmt.Printf("Warnings: %d\n", run.Warnings)
		}
		if len(run.Files) > 0 {
			fmt.Println("Files:")
			for _, f := range run.Files {
				fmt.Printf("  %s (%d bytes, from %s)\n",
					f.Path, f.Bytes, strings.Join(f.Sources, " < "))
			}
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old merge run records",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newManager()
		if err != nil {
			return err
		}
		removed, err := mgr.Runs().Prune(flagHistoryKeep)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d record(s), kept the newest %d.\n", removed, flagHistoryKeep)
		return nil
	},
}

func init() {
	historyListCmd.Flags().StringVar(&flagHistoryAgent, "agent", "", "only runs for this agent")
	historyListCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "maximum number of runs to list")
	historyPruneCmd.Flags().IntVar(&flagHistoryKeep, "keep", 50, "number of newest records to keep")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

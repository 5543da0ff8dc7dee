package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/agentcfg"
)

var (
	flagMergeAgent  string
	flagMergeAll    bool
	flagMergeDryRun bool
	flagMergeOutput string
	flagMergeNoSync bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the hierarchy into agent configuration directories",
	Long: `Merge pulls every hierarchy level up to date, folds overlapping
configuration files together lowest priority first, and writes the
results into the agent's configuration directory.

A missing hierarchy level or an unreadable file is skipped with a
warning; the run itself always completes.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&flagMergeAgent, "agent", "a", "claude", "agent to merge for")
	mergeCmd.Flags().BoolVar(&flagMergeAll, "all", false, "merge for every known agent")
	mergeCmd.Flags().BoolVar(&flagMergeDryRun, "dry-run", false, "report what would be written without writing")
	mergeCmd.Flags().StringVarP(&flagMergeOutput, "output", "o", "", "override the agent's output directory")
	mergeCmd.Flags().BoolVar(&flagMergeNoSync, "no-sync", false, "skip updating hierarchy repositories first")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !flagMergeNoSync {
		if _, err := mgr.Sync(ctx); err != nil {
			return err
		}
	}

	agents := []string{flagMergeAgent}
	if flagMergeAll {
		agents = mgr.Agents()
	}

	var empty []string
	for _, name := range agents {
		result, err := mgr.Merge(ctx, name, agentcfg.MergeOptions{
			DryRun:    flagMergeDryRun,
			OutputDir: flagMergeOutput,
		})
		if err != nil {
			return err
		}
		if flagMergeDryRun {
			printDryRun(name, result)
		}
		if len(result.Written) == 0 {
			empty = append(empty, name)
		}
	}

	// A run that produces nothing is valid for the library but a
	// failure for the command line user.
	if len(empty) > 0 {
		return fmt.Errorf("no configuration files found for %s", strings.Join(empty, ", "))
	}
	return nil
}

func printDryRun(agentName string, result *agentcfg.MergeResult) {
	fmt.Fprintf(os.Stdout, "Would write %d file(s) for %s:\n", len(result.Written), agentName)
	for _, f := range result.Written {
		fmt.Fprintf(os.Stdout, "  %s (%d bytes, from %s)\n",
			f.RelPath, f.Bytes, strings.Join(f.Sources, " < "))
	}
}

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/agentcfg/merge"
)

var titleCaser = cases.Title(language.English)

var mergersCmd = &cobra.Command{
	Use:   "mergers",
	Short: "Inspect the available file mergers",
}

var mergersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mergers and their file registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := merge.NewRegistry()

		filenames, extensions, fallback := registry.Registrations()
		fmt.Println("Mergers:")
		for _, m := range registry.Mergers() {
			fmt.Printf("  %s\n", m.Name())
		}
		if len(filenames) > 0 {
			fmt.Printf("\nFilename registrations: %s\n", strings.Join(filenames, ", "))
		}
		fmt.Printf("\nExtension registrations: %s\n", strings.Join(extensions, ", "))
		fmt.Printf("Default: %s\n", fallback)
		return nil
	},
}

var mergersPrefsCmd = &cobra.Command{
	Use:   "prefs [merger]",
	Short: "Show merger preferences and their defaults",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := merge.NewRegistry()

		mergers := registry.Mergers()
		if len(args) == 1 {
			var found bool
			for _, m := range mergers {
				if m.Name() == args[0] {
					mergers = []merge.Merger{m}
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown merger %q", args[0])
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, m := range mergers {
			schema := m.Preferences()
			fmt.Fprintf(w, "%s\n", titleCaser.String(m.Name())+" Merger")
			if len(schema) == 0 {
				fmt.Fprintln(w, "  (no preferences)")
				continue
			}
			for _, name := range schema.Names() {
				pref := schema[name]
				constraint := ""
				switch {
				case len(pref.Choices) > 0:
					constraint = " [" + strings.Join(pref.Choices, "|") + "]"
				case pref.Min != nil && pref.Max != nil:
					constraint = fmt.Sprintf(" [%v..%v]", *pref.Min, *pref.Max)
				}
				fmt.Fprintf(w, "  %s\t%s\tdefault %v%s\t%s\n",
					name, pref.Type, pref.Default, constraint, pref.Description)
			}
		}
		return w.Flush()
	},
}

func init() {
	mergersCmd.AddCommand(mergersListCmd, mergersPrefsCmd)
	rootCmd.AddCommand(mergersCmd)
}

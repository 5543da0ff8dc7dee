package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/agentcfg/config"
	"github.com/randalmurphal/agentcfg/repo"
)

var (
	flagAddType     string
	flagAddPosition int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the hierarchy configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and a skeleton file",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.Init(); err != nil {
			return err
		}
		fmt.Printf("Initialized %s\n", store.Dir())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		raw, err := os.ReadFile(store.File())
		if err != nil {
			return err
		}
		fmt.Print(string(raw))
		return nil
	},
}

var configAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a hierarchy level",
	Long: `Add a hierarchy level. By default the level is appended, making it
the highest priority; use --position to insert it elsewhere.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repoType := flagAddType
		if !cmd.Flags().Changed("type") {
			if detected := repo.Detect(args[1]); len(detected) > 0 {
				repoType = detected[0]
			}
		}
		return editConfig(func(data *config.Data) error {
			return data.AddLevel(config.HierarchyEntry{
				Name:     args[0],
				URL:      config.NormalizeURL(args[1]),
				RepoType: repoType,
			}, flagAddPosition)
		})
	},
}

var configRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a hierarchy level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editConfig(func(data *config.Data) error {
			return data.RemoveLevel(args[0])
		})
	},
}

var configMoveCmd = &cobra.Command{
	Use:   "move <name> <position>",
	Short: "Move a hierarchy level to a new priority position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("position must be a number: %q", args[1])
		}
		return editConfig(func(data *config.Data) error {
			return data.MoveLevel(args[0], position)
		})
	},
}

var configSetMergerCmd = &cobra.Command{
	Use:   "set-merger <merger> <key> <value>",
	Short: "Set a merger preference override",
	Long: `Set a merger preference override, e.g.:

  agentcfg config set-merger json indent 4
  agentcfg config set-merger yaml strategy extend_lists

Values are parsed as YAML scalars, so numbers and booleans keep their
types. Invalid values are dropped with a warning at merge time.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value any
		if err := yaml.Unmarshal([]byte(args[2]), &value); err != nil {
			value = args[2]
		}
		return editConfig(func(data *config.Data) error {
			data.SetMergerSetting(args[0], args[1], value)
			return nil
		})
	},
}

// editConfig loads, mutates, and saves the configuration in one step.
func editConfig(mutate func(*config.Data) error) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	data, err := store.Load()
	if err != nil {
		return err
	}
	if err := mutate(data); err != nil {
		return err
	}
	return store.Save(data)
}

func init() {
	configAddCmd.Flags().StringVarP(&flagAddType, "type", "t", "git", "repository type (git, file)")
	configAddCmd.Flags().IntVarP(&flagAddPosition, "position", "p", -1, "insert position, -1 appends")

	configCmd.AddCommand(configInitCmd, configShowCmd, configAddCmd,
		configRemoveCmd, configMoveCmd, configSetMergerCmd)
	rootCmd.AddCommand(configCmd)
}

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfcheck/internal/profiles"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List and inspect section limit profiles",
	Long: `Profiles manages named sets of section page limits. Built-in profiles
cover common document types; user profiles are YAML or JSON files in the
configured profiles directory, named after the file. A user profile with
a built-in's name replaces it.`,
}

// --- list subcommand ---

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	RunE:  runProfilesList,
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	all, err := profiles.Load(cfg.Profiles.Dir)
	if err != nil {
		return err
	}
	for _, name := range profiles.Names(all) {
		fmt.Printf("%-20s %d section(s)\n", name, len(all[name]))
	}
	return nil
}

// --- show subcommand ---

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the limits in one profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesShow,
}

func runProfilesShow(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	lim, err := profiles.Get(cfg.Profiles.Dir, args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(lim))
	for name := range lim {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-24s %d page(s)\n", name, lim[name])
	}
	return nil
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)

	rootCmd.AddCommand(profilesCmd)
}

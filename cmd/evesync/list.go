package main

import (
	"fmt"

	"github.com/arthur-debert/evesync/pkg/evesync/saves"
	"github.com/spf13/cobra"
)

func newServersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List the known servers and their settings directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range a.svc.Servers() {
				dir, err := a.svc.Layout().Dir(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", headerStyle.Render(name), dimStyle.Render(dir.Path))
			}
			return nil
		},
	}
}

func newProfilesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles [server]",
		Short: "List the settings profiles of a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.svc.Profiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				fmt.Fprintln(out, dimStyle.Render("No profiles found."))
				return nil
			}
			for _, p := range profiles {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
}

// newSavesCommand builds "accounts" or "characters".
func newSavesCommand(a *app, what string) *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   what + " [server] [profile]",
		Short: fmt.Sprintf("List the %s settings files of a profile", what),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := a.svc.Accounts
			if what == "characters" {
				list = a.svc.Characters
			}
			found, err := list(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSaves(cmd, found, what, idsOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print ids only")

	return cmd
}

func printSaves(cmd *cobra.Command, found []saves.Save, what string, idsOnly bool) {
	out := cmd.OutOrStdout()
	if len(found) == 0 {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("No %s found.", what)))
		return
	}
	for _, s := range found {
		if idsOnly {
			fmt.Fprintln(out, s.ID)
			continue
		}
		fmt.Fprintln(out, s.Label)
	}
}

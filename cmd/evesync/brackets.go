package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBracketsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "Show or toggle 'always show ship text' on brackets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status [server] [profile]",
		Short: "Show whether brackets always show ship text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := a.svc.BracketsEnabled(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Brackets ship text: %s\n", onOff(on))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle [server] [profile]",
		Short: "Toggle whether brackets always show ship text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := a.svc.ToggleBrackets(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Brackets ship text: %s\n", onOff(on))
			return nil
		},
	})

	return cmd
}

func onOff(on bool) string {
	if on {
		return okStyle.Render("on")
	}
	return dimStyle.Render("off")
}

package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/evesync/pkg/evesync/core"
	"github.com/arthur-debert/evesync/pkg/evesync/transfer"
	"github.com/spf13/cobra"
)

func newCopyCommand(a *app) *cobra.Command {
	var (
		from   string
		to     string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy an account/character settings pair to another profile",
		Long: `Copy the account and character settings files selected by --from over the
ones selected by --to. Both selections are written as
server/profile/account/character, for example
  evesync copy --from Tranquility/settings_Default/1000/2000 --to Thunderdome/settings_Default/1000/2000

Destination files are overwritten without a backup. The character file is
only copied after the account file was copied successfully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := parseSelection(from)
			dst := parseSelection(to)
			if missing := src.Missing(); len(missing) > 0 {
				return &core.IncompleteSelectionError{Side: "source", Missing: missing}
			}
			if missing := dst.Missing(); len(missing) > 0 {
				return &core.IncompleteSelectionError{Side: "destination", Missing: missing}
			}

			result, err := a.svc.Copy(cmd.Context(), src, dst, transfer.WithDryRun(dryRun))
			if result == nil {
				return err
			}

			out := cmd.OutOrStdout()
			header := "Transfer " + result.RequestID
			if result.DryRun {
				header = "DRY RUN: " + header
			}
			fmt.Fprintln(out, headerStyle.Render(header))
			for _, s := range result.Steps {
				fmt.Fprintf(out, "  %s %-9s %s -> %s (%s)\n",
					statusMark(s.Status), s.Step.Name, s.Step.Source, s.Step.Destination, s.Status)
				if s.Error != nil {
					fmt.Fprintf(out, "    Error: %v\n", s.Error)
				}
			}

			if err != nil {
				if result.Partial() {
					fmt.Fprintln(out, errorStyle.Render("Account settings were copied, character settings were not."))
				}
				return fmt.Errorf("failed to copy settings: %w", err)
			}
			if result.DryRun {
				fmt.Fprintln(out, okStyle.Render("Nothing was written."))
				return nil
			}
			fmt.Fprintln(out, okStyle.Render("Settings copied successfully."))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source server/profile/account/character")
	cmd.Flags().StringVar(&to, "to", "", "destination server/profile/account/character")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "check the sources and show what would be copied")

	return cmd
}

// parseSelection splits server/profile/account/character; absent parts stay empty.
func parseSelection(s string) core.Selection {
	parts := strings.SplitN(s, "/", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	return core.Selection{
		Server:    strings.TrimSpace(parts[0]),
		Profile:   strings.TrimSpace(parts[1]),
		Account:   strings.TrimSpace(parts[2]),
		Character: strings.TrimSpace(parts[3]),
	}
}

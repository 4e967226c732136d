package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

func newI18nCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n",
		Short: "Inspect the UI string tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range i18n.Languages() {
				fmt.Printf("%s\t%s\t%s\n", l, l.Name(), l.NativeName())
			}
		},
	})

	var strict bool
	check := &cobra.Command{
		Use:   "check",
		Short: "Report keys that fall back to English",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			okColor := color.New(color.FgGreen)
			warnColor := color.New(color.FgYellow)
			total := 0
			for _, l := range i18n.Languages() {
				missing := i18n.Missing(l)
				slices.Sort(missing)
				if len(missing) == 0 {
					okColor.Printf("%s: complete\n", l)
					continue
				}
				total += len(missing)
				warnColor.Printf("%s: %d missing\n", l, len(missing))
				for _, k := range missing {
					fmt.Printf("  %s\n", k)
				}
			}
			if strict && total > 0 {
				return fmt.Errorf("%d untranslated keys", total)
			}
			return nil
		},
	}
	check.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any key is missing")
	cmd.AddCommand(check)
	return cmd
}

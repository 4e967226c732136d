package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "legalctl",
	Short:   "Offline tools for the legal assistant",
	Version: "1.0",
}

func main() {
	rootCmd.AddCommand(newPredictCmd())
	rootCmd.AddCommand(newI18nCmd())
	cobra.CheckErr(rootCmd.Execute())
}

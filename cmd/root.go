package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "sandscan",
	Short: "A tool for detecting sandwich attacks in DEX swap batches",
}

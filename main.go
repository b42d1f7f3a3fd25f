package main

import (
	"fmt"
	"os"

	"github.com/RedTeamPentesting/slotfuzz/cmd/fuzz"
	"github.com/RedTeamPentesting/slotfuzz/cmd/show"
	"github.com/RedTeamPentesting/slotfuzz/cmd/summary"
	"github.com/RedTeamPentesting/slotfuzz/cmd/test"
	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:   "slotfuzz command [options]",
	Short: "Send base64 encoded slot patterns to a web application",
	Long: `slotfuzz generates random patterns like "5@@12@31", encodes them with base64
and appends them to a base URL. The responses are saved for manual review.`,

	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	fuzz.AddCommand(cmdRoot)
	show.AddCommand(cmdRoot)
	test.AddCommand(cmdRoot)
	summary.AddCommand(cmdRoot)

	setupHelp(cmdRoot)
}

func main() {
	reset := prepareTerminal()

	err := cmdRoot.Execute()
	reset()

	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail <coin-id>",
	Short: "Print the full metadata document of a coin",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	if !rt.client.ValidateParameters() {
		return fmt.Errorf("client configuration is invalid")
	}

	ctx, cancel := rt.runContext(cmd.Context())
	defer cancel()

	detail := rt.client.GetCoinDataByID(ctx, args[0])
	rt.pushMetrics()
	if detail == nil {
		return fmt.Errorf("coin detail for %q is unavailable", args[0])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(detail)
}

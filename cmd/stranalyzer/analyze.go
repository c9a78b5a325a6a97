package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domanalysis "github.com/kailas-cloud/stranalyzer/internal/domain/analysis"
	chiTransport "github.com/kailas-cloud/stranalyzer/internal/transport/chi"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <text...>",
		Short: "Print the properties of a string without starting the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := domanalysis.Analyze(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			resp := chiTransport.NewStringResponse(domanalysis.NewEntry(record, time.Now()))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}

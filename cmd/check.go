package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkraj/apiprobe/internal/config"
	"github.com/mkraj/apiprobe/internal/openapi"
	"github.com/mkraj/apiprobe/internal/prober"
	"github.com/mkraj/apiprobe/internal/sink"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <api-spec.yaml>",
	Short: "Probe every reachable read endpoint described by an API spec",
	Long: `Check loads an API description, selects the first-level GET endpoints,
fills their required parameters from the defaults file, probes each one
against the live service, and writes an ordered JSON result list.

Endpoints whose required parameters have no defaults are recorded as skipped
without a call. A missing or empty API key, defaults file or spec aborts the
run before any network activity.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("api-key", "s", "./.secret", "API key file")
	checkCmd.Flags().StringP("defaults", "d", "./defaults.json", "JSON file with default parameter values")
	checkCmd.Flags().StringP("output", "o", "", "Results file (default <spec-name>.json)")
	checkCmd.Flags().Duration("delay", prober.DefaultDelay, "Delay between performed calls")
	checkCmd.Flags().Duration("timeout", prober.DefaultTimeout, "Per-call timeout")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)
	specPath := args[0]

	keyFile, _ := cmd.Flags().GetString("api-key")
	defaultsFile, _ := cmd.Flags().GetString("defaults")
	output, _ := cmd.Flags().GetString("output")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	// All three inputs are validated before any probing starts.
	apiKey, err := config.ReadAPIKey(keyFile)
	if err != nil {
		return err
	}
	defaults, err := config.LoadDefaults(defaultsFile)
	if err != nil {
		return err
	}
	doc, err := openapi.LoadFile(specPath)
	if err != nil {
		return err
	}

	endpoints := prober.SelectEndpoints(doc)
	logger.Info("endpoints selected", "count", len(endpoints), "base_url", doc.BaseURL())

	p := prober.New(doc.BaseURL(), apiKey)
	p.Delay = delay
	p.Client.Timeout = timeout
	p.Logger = logger

	outcomes := p.Run(cmd.Context(), endpoints, defaults)

	if output == "" {
		base := filepath.Base(specPath)
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	}
	fmt.Printf("Writing results to %s...\n", output)
	if err := sink.WriteFile(output, outcomes); err != nil {
		return err
	}
	fmt.Println("Done!")
	return nil
}

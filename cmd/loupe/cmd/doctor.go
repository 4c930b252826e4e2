package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/loupe-search/loupe/internal/capability"
	"github.com/loupe-search/loupe/internal/config"
	"github.com/loupe-search/loupe/internal/ui"
)

func newDoctorCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check neural search capability and diagnose issues",
		Long: `Report whether semantic search can run on this machine.

Checks:
  - ONNX runtime library (dlopen probe)
  - Total physical memory (4 GiB minimum)
  - Embedding model artifact (~/.loupe/models/model.onnx)

Keyword, fuzzy, regex and tf-idf search work regardless of the
outcome; the checks only gate the semantic strategy.`,
		Example: `  # Run diagnostics
  loupe doctor

  # JSON output for scripting
  loupe doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

type doctorReport struct {
	Capability capability.Capability `json:"capability"`
	Details    capability.Details    `json:"details"`
	Tier       string                `json:"tier"`

	Recommendations []string `json:"recommendations,omitempty"`
}

func runDoctor(cmd *cobra.Command, jsonOutput bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	detector := newDetector(cfg)
	report := doctorReport{
		Capability: detector.Detect(),
		Details:    detector.Details(),
	}
	report.Tier = report.Details.Tier()
	report.Recommendations = report.Details.Recommendations()

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	w := cmd.OutOrStdout()
	styles := stdoutStyles()

	fmt.Fprintln(w, styles.Header.Render("Loupe diagnostics"))
	fmt.Fprintln(w)

	check(w, styles, "ONNX runtime library", report.Details.RuntimeAvailable)
	check(w, styles, fmt.Sprintf("Memory (%.1f GiB total)",
		float64(report.Details.TotalMemoryBytes)/(1<<30)), report.Details.ResourcesAdequate)
	check(w, styles, fmt.Sprintf("Embedding model (%s)", detector.ModelPath()),
		report.Details.ModelAvailable)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Capability: %s\n", report.Capability.String())
	fmt.Fprintf(w, "Search tier: %s (%d CPUs)\n", report.Tier, report.Details.CPUCount)

	if len(report.Recommendations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Header.Render("Recommendations"))
		for _, r := range report.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
	return nil
}

func check(w io.Writer, styles ui.Styles, name string, ok bool) {
	mark := styles.Success.Render("ok")
	if !ok {
		mark = styles.Warning.Render("missing")
	}
	fmt.Fprintf(w, "  [%s] %s\n", mark, name)
}

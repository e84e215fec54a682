package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/cli"
	"github.com/mercator-hq/routecore/pkg/config"
	"github.com/mercator-hq/routecore/pkg/registry"
	"github.com/mercator-hq/routecore/pkg/restriction"
	"github.com/mercator-hq/routecore/pkg/telemetry/logging"
)

// ValidationReport is the structured result of a validate run, emitted
// verbatim when --output=json is set instead of the human-readable text
// printed by default.
type ValidationReport struct {
	ConfigValid       bool                                    `json:"config_valid"`
	CustomModels      []CustomModelsRegistryCheck             `json:"custom_models,omitempty"`
	Restrictions      map[capabilities.ProviderKind][]string `json:"restrictions,omitempty"`
	AllowListWarnings []string                                `json:"allow_list_warnings,omitempty"`
}

// CustomModelsRegistryCheck records one provider kind's custom-models
// registry validation outcome.
type CustomModelsRegistryCheck struct {
	Provider   capabilities.ProviderKind `json:"provider"`
	ModelCount int                       `json:"model_count"`
}

var validateFlags struct {
	output string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and the custom-models registry",
	Long: `Validate checks that the configuration file is well-formed and
internally consistent, that any configured custom-models registry file
parses and contains no duplicate aliases, and prints a summary of the
effective per-provider allow-lists.

It performs no network calls and starts no stdio loop.

Examples:
  # Validate the default config.yaml
  routecore validate

  # Validate a specific config file
  routecore validate --config /etc/routecore/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFlags.output, "output", "text", "output format: text or json")
}

func runValidate(cmd *cobra.Command, args []string) error {
	format := cli.OutputFormat(validateFlags.output)
	textOutput := format != cli.FormatJSON

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if textOutput {
		fmt.Println("✓ Configuration valid")
	}

	report := ValidationReport{ConfigValid: true}

	checks, err := validateCustomModelsRegistry(cfg, textOutput)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}
	report.CustomModels = checks

	restrictionSvc := buildRestrictionService(cfg)
	report.Restrictions = restrictionSvc.Summary()
	if textOutput {
		printRestrictionSummary(restrictionSvc, cfg)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewCommandError("validate", fmt.Errorf("failed to initialize logging: %w", err))
	}
	defer logger.Shutdown()

	reg := registry.New()
	// A cancelled context stops each provider's health checker before its
	// first check, so validate makes no network calls.
	checkCtx, cancel := context.WithCancel(context.Background())
	cancel()
	registerProviders(checkCtx, reg, cfg, restrictionSvc, nil, logger)

	warnings := validateAllowListsAgainstProviders(reg, restrictionSvc)
	report.AllowListWarnings = warnings
	if textOutput {
		if len(warnings) > 0 {
			fmt.Println("! Allow-list entries not found among known models:")
			for _, w := range warnings {
				fmt.Printf("  - %s\n", w)
			}
		} else {
			fmt.Println("✓ All allow-listed models recognized")
		}
		return nil
	}

	return cli.NewFormatter(format).FormatTo(os.Stdout, report)
}

// validateCustomModelsRegistry loads the custom-models registry file
// (consumed by the Aggregator and Custom providers) once per
// provider kind that references it, failing on malformed JSON or a
// duplicate alias. Progress is reported as each provider kind's
// registry file is loaded.
func validateCustomModelsRegistry(cfg *config.Config, report bool) ([]CustomModelsRegistryCheck, error) {
	if cfg.CustomModelsPath == "" {
		return nil, nil
	}

	var kinds []capabilities.ProviderKind
	for name := range cfg.Providers {
		kind := capabilities.ProviderKind(name)
		if kind == capabilities.Aggregator || kind == capabilities.Custom {
			kinds = append(kinds, kind)
		}
	}

	var progress cli.ProgressReporter
	if report && len(kinds) > 0 {
		progress = cli.NewProgressReporter(os.Stdout)
		progress.Start(int64(len(kinds)))
	}

	var checks []CustomModelsRegistryCheck
	for i, kind := range kinds {
		table, err := capabilities.LoadRegistryFile(kind, cfg.CustomModelsPath)
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return nil, fmt.Errorf("custom-models registry %q is invalid for provider %q: %w", cfg.CustomModelsPath, kind, err)
		}
		checks = append(checks, CustomModelsRegistryCheck{Provider: kind, ModelCount: table.Len()})
		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	return checks, nil
}

// validateAllowListsAgainstProviders checks every restricted provider's
// allow-list against the models its live provider instance reports
// knowing, catching allow-list typos before serve starts.
func validateAllowListsAgainstProviders(reg *registry.Registry, svc *restriction.Service) []string {
	known := make(map[capabilities.ProviderKind]restriction.KnownModelLister)
	for _, kind := range reg.AvailableProviders() {
		if prov, ok := reg.Provider(kind); ok {
			known[kind] = prov
		}
	}
	return svc.ValidateAgainstKnown(known)
}

// printRestrictionSummary prints, for each provider carrying an
// allow-list restriction, its sorted set of allowed model names. A
// provider absent from the output has no restriction configured.
func printRestrictionSummary(svc *restriction.Service, cfg *config.Config) {
	summary := svc.Summary()
	if len(summary) == 0 {
		fmt.Println("✓ No provider restrictions configured")
		return
	}

	kinds := make([]capabilities.ProviderKind, 0, len(summary))
	for kind := range summary {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Println("✓ Provider restrictions:")
	for _, kind := range kinds {
		fmt.Printf("  %s: %v\n", kind, summary[kind])
	}
}

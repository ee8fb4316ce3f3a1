package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MatyiFKBT/botogram/internal/core"
)

var (
	validateConfig string
	validateJSON   bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Config      string   `json:"config"`
	PollTimeout string   `json:"poll_timeout,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the configuration file without starting the bot.

This command checks:
  - YAML syntax
  - Required fields (bot token)
  - Poll timeout bounds
  - Logging settings

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := core.LoadConfig(validateConfig)
		if err != nil {
			outputValidationResult(ValidationResult{
				Valid:  false,
				Config: validateConfig,
				Errors: []string{err.Error()},
			}, validateJSON)
			os.Exit(1)
		}

		result := ValidationResult{
			Valid:       true,
			Config:      validateConfig,
			PollTimeout: cfg.Bot.PollTimeout,
			Warnings:    validateConfigDetails(cfg),
		}
		outputValidationResult(result, validateJSON)
	},
}

func outputValidationResult(result ValidationResult, jsonFormat bool) {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			fmt.Printf("{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Println(string(output))
		return
	}

	if result.Valid {
		fmt.Println("✓ Configuration is valid")
		fmt.Printf("  - Config: %s\n", result.Config)
		fmt.Printf("  - Poll timeout: %s\n", result.PollTimeout)
	} else {
		fmt.Println("❌ Configuration validation failed:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  - %s\n", errMsg)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}
}

func validateConfigDetails(cfg *core.Config) []string {
	var warnings []string

	if cfg.Bot.ProcessBacklog {
		warnings = append(warnings, "process_backlog is enabled - messages received while the bot was offline will be dispatched to hooks")
	}
	if cfg.Logging.File == "" {
		warnings = append(warnings, "No log file configured - logs will only be written to stdout")
	}

	return warnings
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "config.yaml", "Configuration file path")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/pair-overlap/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an engine result JSON file against the result schema",
	Long:  "Checks a saved result document (as produced by compute or the upload API) against the embedded JSON Schema.",
	RunE:  runValidate,
}

var (
	validateJSONPath string
)

func init() {
	validateCmd.Flags().StringVarP(&validateJSONPath, "json", "j", "", "Path to result JSON file (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	err := schemas.ValidateResultFile(validateJSONPath)
	if err == nil {
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", validateJSONPath)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed: %s\n%s", validateJSONPath, validationErr.Error())
		return fmt.Errorf("%s does not match the result schema", validateJSONPath)
	}
	return err
}

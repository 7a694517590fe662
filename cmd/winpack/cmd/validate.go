package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/winpack/internal/service/packager"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Resolve the configuration and render manifests without writing them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		merged, err := packager.Validate(cmd.Context(), &packager.Options{ConfigPath: configPath})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Name:        %s\n", merged.Identifier)
		_, _ = fmt.Fprintf(out, "DisplayName: %s\n", merged.DisplayName)
		_, _ = fmt.Fprintf(out, "Version:     %s\n", merged.Version)
		_, _ = fmt.Fprintf(out, "Publisher:   %s\n", merged.Publisher)

		return nil
	},
}

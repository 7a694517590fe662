package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/winpack/internal/config"
	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/repository/document"
	"github.com/oshokin/winpack/internal/service/extension"
)

var (
	extensionCmd = &cobra.Command{
		Use:   "extension",
		Short: "List, add or remove extension declarations in the packaging config",
	}

	extensionListCmd = &cobra.Command{
		Use:   "list",
		Short: "List declared extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newExtensionService()
			if err != nil {
				return err
			}

			summaries, err := service.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				_, _ = fmt.Fprintln(out, "No extensions declared")

				return nil
			}

			for _, summary := range summaries {
				_, _ = fmt.Fprintf(out, "%s: %s\n", summary.Kind, strings.Join(summary.Entries, ", "))
			}

			return nil
		},
	}

	extensionAddCmd = &cobra.Command{
		Use:   "add <kind> <json>",
		Short: "Add an entry to a kind, or enable a toggle kind with true or an object",
		Long:  "Known kinds: " + strings.Join(packaging.Kinds, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newExtensionService()
			if err != nil {
				return err
			}

			return service.Add(cmd.Context(), args[0], []byte(args[1]))
		},
	}

	extensionRemoveCmd = &cobra.Command{
		Use:   "remove <kind>",
		Short: "Remove every entry of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newExtensionService()
			if err != nil {
				return err
			}

			return service.Remove(cmd.Context(), args[0])
		},
	}
)

// newExtensionService opens the packaging config named by the settings file.
func newExtensionService() (*extension.Service, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err = config.Validate(settings); err != nil {
		return nil, err
	}

	return extension.NewService(document.NewFileRepository(settings.PackagingConfig)), nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	extensionCmd.AddCommand(extensionListCmd, extensionAddCmd, extensionRemoveCmd)
}

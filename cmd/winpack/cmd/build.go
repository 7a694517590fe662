package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/winpack/internal/service/packager"
)

// packFlagUsage documents that --pack packs the architecture directory as it is.
const packFlagUsage = "run makepri, makeappx and signtool on each <output>/<arch> directory after writing manifests; " +
	"the directory only receives AppxManifest.xml, so copy the executable and Assets\\ into it first"

var (
	// buildArchitectures overrides the configured architectures.
	buildArchitectures []string
	// buildOutputDir overrides the configured output directory.
	buildOutputDir string
	// buildPack runs the external toolchain after writing manifests.
	buildPack bool

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Write AppxManifest.xml for each architecture and optionally pack it",
		Args:  cobra.NoArgs,
		Long: "Write <output>/<arch>/AppxManifest.xml for each architecture.\n\n" +
			"With --pack each architecture directory is packed as it is. winpack does not stage the application " +
			"executable or the Assets\\*.png files the manifest references; place them in the directory before packing.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := packager.Run(cmd.Context(), &packager.Options{
				ConfigPath:    configPath,
				Architectures: buildArchitectures,
				OutputDir:     buildOutputDir,
				Pack:          buildPack,
			})
			if err != nil {
				return err
			}

			for _, item := range items {
				target := item.ManifestPath
				if buildPack {
					target = item.PackagePath
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Architecture, target)
			}

			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	buildCmd.Flags().StringSliceVarP(&buildArchitectures, "arch", "a", nil, "target architectures (x64, x86, arm64, arm, neutral)")
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "", "output directory")
	buildCmd.Flags().BoolVar(&buildPack, "pack", false, packFlagUsage)
}

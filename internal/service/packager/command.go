package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/winpack/internal/config"
	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/logger"
	"github.com/oshokin/winpack/internal/manifest"
	"github.com/oshokin/winpack/internal/resolver"
)

// ManifestFilename is the manifest file name inside each architecture directory.
const ManifestFilename = "AppxManifest.xml"

// Options contains inputs for the build entry point.
type Options struct {
	// ConfigPath is the settings file (defaults to winpack.yaml).
	ConfigPath string
	// Architectures overrides the configured architectures when non-empty.
	Architectures []string
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
	// Pack runs the external toolchain after writing manifests.
	Pack bool
	// Packer replaces the toolchain packer, mostly for tests.
	Packer Packer
}

// WorkItem is one architecture's build unit handed to a Packer.
type WorkItem struct {
	// ID identifies the work item in logs.
	ID string
	// Architecture is the processor architecture placed in the manifest.
	Architecture string
	// Version is the four-segment package version.
	Version string
	// PayloadDir is the directory packed into the package. winpack only writes the manifest there;
	// the executable and assets must be staged by the caller before packing.
	PayloadDir string
	// ManifestPath is the written AppxManifest.xml.
	ManifestPath string
	// PackagePath is where the .msix package is produced.
	PackagePath string
	// Executable is the application executable inside the payload.
	Executable string
	// Signing is the certificate configuration, if any.
	Signing *packaging.Signing
	// Thumbprint selects a store certificate when Signing has no certificate file.
	Thumbprint string
	// ResourceIndex requests resources.pri generation.
	ResourceIndex bool
	// Checksum is the hex SHA-256 of the package, set once packing succeeds.
	Checksum string
}

// Run executes the build workflow and returns one work item per architecture, sorted by architecture.
func Run(ctx context.Context, opts *Options) ([]*WorkItem, error) {
	ctx = logger.WithName(ctx, "winpack")

	cfg, err := loadSettings(opts)
	if err != nil {
		return nil, err
	}

	merged, err := resolver.LoadAndResolve(resolver.Paths{
		AppConfig:         cfg.AppConfig,
		AppConfigOverride: cfg.AppConfigOverride,
		PackagingConfig:   cfg.PackagingConfig,
	})
	if err != nil {
		return nil, err
	}

	template, err := resolver.LoadTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Configuration resolved",
		"name", merged.DisplayName,
		"version", merged.Version,
		"publisher", merged.Publisher,
		"architectures", cfg.Architectures,
	)

	items, err := writeManifests(ctx, cfg, merged, template)
	if err != nil {
		return nil, err
	}

	if !opts.Pack {
		return items, nil
	}

	packer := opts.Packer
	if packer == nil {
		packer = NewToolchainPacker(cfg.Tools)
	}

	if err = packAll(ctx, packer, items); err != nil {
		return nil, err
	}

	return items, nil
}

// loadSettings reads settings and applies command line overrides.
func loadSettings(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if len(opts.Architectures) > 0 {
		cfg.Architectures = append([]string(nil), opts.Architectures...)
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// writeManifests renders and writes the manifest for every architecture concurrently.
func writeManifests(
	ctx context.Context,
	cfg *config.Config,
	merged *packaging.Merged,
	template string,
) ([]*WorkItem, error) {
	architectures := uniqueSorted(cfg.Architectures)
	items := make([]*WorkItem, len(architectures))

	group, groupCtx := errgroup.WithContext(ctx)

	for i, architecture := range architectures {
		group.Go(func() error {
			item, err := writeManifest(groupCtx, cfg, merged, architecture, template)
			if err != nil {
				return fmt.Errorf("%s: %w", architecture, err)
			}

			items[i] = item

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return items, nil
}

func writeManifest(
	ctx context.Context,
	cfg *config.Config,
	merged *packaging.Merged,
	architecture, template string,
) (*WorkItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := manifest.Assemble(merged, architecture, cfg.MinVersion, template)
	if err != nil {
		return nil, err
	}

	payloadDir := filepath.Join(cfg.OutputDir, architecture)
	if err = os.MkdirAll(payloadDir, config.DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	manifestPath := filepath.Join(payloadDir, ManifestFilename)
	if err = os.WriteFile(manifestPath, []byte(text), config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	item := &WorkItem{
		ID:            uuid.NewString(),
		Architecture:  architecture,
		Version:       merged.Version,
		PayloadDir:    payloadDir,
		ManifestPath:  manifestPath,
		PackagePath:   filepath.Join(cfg.OutputDir, packageFilename(merged, architecture)),
		Executable:    manifest.ExecutableName(merged.DisplayName),
		Signing:       merged.Signing,
		Thumbprint:    merged.CertificateThumbprint,
		ResourceIndex: merged.ResourceIndexEnabled(),
	}

	logger.InfoKV(ctx, "Manifest written",
		"architecture", architecture,
		"path", manifestPath,
		"work_item", item.ID,
	)

	return item, nil
}

// packageFilename builds "<Name>_<version>_<arch>.msix".
func packageFilename(merged *packaging.Merged, architecture string) string {
	name := manifest.ExecutableName(merged.DisplayName)
	name = name[:len(name)-len(".exe")]

	return fmt.Sprintf("%s_%s_%s.msix", name, merged.Version, architecture)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		result = append(result, value)
	}

	sort.Strings(result)

	return result
}

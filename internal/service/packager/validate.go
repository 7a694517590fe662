package packager

import (
	"context"

	"github.com/oshokin/winpack/internal/domain/packaging"
	"github.com/oshokin/winpack/internal/logger"
	"github.com/oshokin/winpack/internal/manifest"
	"github.com/oshokin/winpack/internal/resolver"
)

// Validate resolves the configuration and renders every manifest in memory without writing anything.
func Validate(ctx context.Context, opts *Options) (*packaging.Merged, error) {
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

	for _, architecture := range uniqueSorted(cfg.Architectures) {
		if _, err = manifest.Assemble(merged, architecture, cfg.MinVersion, template); err != nil {
			return nil, err
		}

		logger.DebugKV(ctx, "Manifest rendered", "architecture", architecture)
	}

	return merged, nil
}

package packager

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/winpack/internal/config"
	"github.com/oshokin/winpack/internal/logger"
)

// Packer turns a work item into a package.
type Packer interface {
	Pack(ctx context.Context, item *WorkItem) error
}

// runner executes one external command.
type runner func(ctx context.Context, name string, args ...string) error

// ToolchainPacker drives makepri, makeappx and signtool.
type ToolchainPacker struct {
	tools config.Tools
	run   runner
}

// errAppRunning indicates that the packaged executable is running and its files may be locked.
var errAppRunning = errors.New("the application is running now")

// NewToolchainPacker creates a packer that runs the given tools.
func NewToolchainPacker(tools config.Tools) *ToolchainPacker {
	return &ToolchainPacker{
		tools: tools,
		run:   runCommand,
	}
}

// Pack runs every toolchain step for item in order.
func (p *ToolchainPacker) Pack(ctx context.Context, item *WorkItem) error {
	ctx = logger.WithKV(ctx, "architecture", item.Architecture, "work_item", item.ID)

	for _, command := range p.commands(item) {
		logger.DebugKV(ctx, "Running toolchain command", "command", strings.Join(command, " "))

		if err := p.run(ctx, command[0], command[1:]...); err != nil {
			return err
		}
	}

	if item.Signing == nil || item.Signing.Certificate == "" {
		if item.Thumbprint == "" {
			logger.Warn(ctx, "No signing certificate configured, the package is unsigned")
		}
	}

	checksum, err := writeChecksum(item.PackagePath)
	if err != nil {
		return err
	}

	item.Checksum = checksum

	logger.InfoKV(ctx, "Package created", "path", item.PackagePath, "sha256", checksum)

	return nil
}

// ChecksumSuffix is appended to the package path for the checksum file.
const ChecksumSuffix = ".sha256"

// writeChecksum stores the SHA-256 of the package next to it in "<hex>  <name>" form.
func writeChecksum(packagePath string) (string, error) {
	contents, err := os.ReadFile(filepath.Clean(packagePath))
	if err != nil {
		return "", fmt.Errorf("read package: %w", err)
	}

	sum := sha256.Sum256(contents)
	checksum := hex.EncodeToString(sum[:])
	line := fmt.Sprintf("%s  %s\n", checksum, filepath.Base(packagePath))

	if err = os.WriteFile(packagePath+ChecksumSuffix, []byte(line), config.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("write checksum: %w", err)
	}

	return checksum, nil
}

// commands lists the toolchain invocations for item.
func (p *ToolchainPacker) commands(item *WorkItem) [][]string {
	var commands [][]string

	if item.ResourceIndex {
		priConfig := filepath.Join(item.PayloadDir, "priconfig.xml")
		commands = append(commands,
			[]string{p.tools.MakePri, "createconfig", "/cf", priConfig, "/dq", "en-US", "/o"},
			[]string{
				p.tools.MakePri, "new",
				"/pr", item.PayloadDir,
				"/cf", priConfig,
				"/mn", item.ManifestPath,
				"/of", filepath.Join(item.PayloadDir, "resources.pri"),
				"/o",
			},
		)
	}

	commands = append(commands, []string{p.tools.MakeAppx, "pack", "/o", "/d", item.PayloadDir, "/p", item.PackagePath})

	switch {
	case item.Signing != nil && item.Signing.Certificate != "":
		sign := []string{p.tools.SignTool, "sign", "/fd", "SHA256", "/f", item.Signing.Certificate}
		if item.Signing.Password != "" {
			sign = append(sign, "/p", item.Signing.Password)
		}

		commands = append(commands, append(sign, item.PackagePath))
	case item.Thumbprint != "":
		commands = append(commands, []string{p.tools.SignTool, "sign", "/fd", "SHA256", "/sha1", item.Thumbprint, item.PackagePath})
	}

	return commands
}

// runCommand executes name and includes its output in the error on failure.
func runCommand(ctx context.Context, name string, args ...string) error {
	var output bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", filepath.Base(name), args[0], err, strings.TrimSpace(output.String()))
	}

	return nil
}

// packAll packs every work item concurrently after checking the application is not running.
func packAll(ctx context.Context, packer Packer, items []*WorkItem) error {
	if len(items) == 0 {
		return nil
	}

	running, err := isProcessRunning(items[0].Executable)
	if err != nil {
		logger.WarnKV(ctx, "Unable to list processes", "error", err)
	} else if running {
		return fmt.Errorf("%w: %s", errAppRunning, items[0].Executable)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for _, item := range items {
		group.Go(func() error {
			if err := packer.Pack(groupCtx, item); err != nil {
				return fmt.Errorf("pack %s: %w", item.Architecture, err)
			}

			return nil
		})
	}

	return group.Wait()
}

// isProcessRunning reports whether another process runs the given executable.
func isProcessRunning(executable string) (bool, error) {
	processList, err := ps.Processes()
	if err != nil {
		return false, err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if strings.EqualFold(process.Executable(), executable) {
			return true, nil
		}
	}

	return false, nil
}

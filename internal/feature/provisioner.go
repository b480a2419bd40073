package feature

import (
	"fmt"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/logging"
	"github.com/jubbon/isolde-sub000/internal/system"
)

// CoreBundles are provisioned into every generated project.
var CoreBundles = []string{"claude-code", "proxy", "plugin-manager"}

// Provisioner copies feature bundles from the catalog into a generated
// .devcontainer tree.
type Provisioner struct {
	// SourceRoot is the catalog features directory.
	SourceRoot string

	fs system.FileSystem
}

// NewProvisioner returns a provisioner over the given features root.
func NewProvisioner(sourceRoot string) *Provisioner {
	return &Provisioner{SourceRoot: sourceRoot, fs: system.DefaultFS()}
}

// Provision copies the named bundle into destRoot/<bundle>. The destination
// is fully replaced: any existing copy is removed first, never merged, so a
// regenerated bundle carries no stale files. File modes are preserved, so
// install scripts stay executable.
func (p *Provisioner) Provision(bundle, destRoot string) error {
	src, err := securejoin.SecureJoin(p.SourceRoot, bundle)
	if err != nil {
		return errors.New(errors.ExitValidation, fmt.Sprintf("invalid feature bundle name %q", bundle))
	}

	if !p.fs.IsDir(src) {
		return errors.FeatureBundleMissing(bundle)
	}

	dest := filepath.Join(destRoot, bundle)
	if err := p.fs.RemoveAll(dest); err != nil {
		return errors.ConfigError(fmt.Sprintf("failed to clear feature bundle destination %s", dest), err)
	}

	logging.Debug("provisioning feature bundle", "bundle", bundle, "dest", dest)
	return p.copyTree(src, dest)
}

// ProvisionAll provisions every named bundle, stopping at the first failure.
func (p *Provisioner) ProvisionAll(bundles []string, destRoot string) error {
	for _, bundle := range bundles {
		if err := p.Provision(bundle, destRoot); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provisioner) copyTree(src, dest string) error {
	info, err := p.fs.Stat(src)
	if err != nil {
		return err
	}
	if err := p.fs.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := p.fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := p.copyTree(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		if err := p.fs.CopyFile(srcPath, destPath); err != nil {
			return err
		}
	}
	return nil
}

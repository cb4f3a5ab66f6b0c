// Package config carries the explicit settings the launcher is constructed
// with: the project identity (repository owner and base name), the workspace
// directory holding the administration file, and the PyFunceble configuration
// locations. Everything is injected; nothing reads globals after Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CanonicalOwner is the organization whose repositories are managed centrally.
// Repositories owned by anyone else default to opting out of the platform.
const CanonicalOwner = "dead-hosts"

// InfoFilename is the administration file name inside the workspace.
const InfoFilename = "info.json"

// Settings is the resolved launcher configuration.
type Settings struct {
	// Owner is the repository owner (user or organization).
	Owner string
	// Name is the repository base name. It drives the record's `name`,
	// `repo` and `platform_container_name` fields.
	Name string
	// WorkspaceDir is the checkout of the hosts-list repository; the
	// administration file and legacy sibling files live here.
	WorkspaceDir string
	// PyFuncebleConfigDir is the canonical (persistent) PyFunceble
	// configuration directory, used when the project opted out of the
	// platform.
	PyFuncebleConfigDir string
	// TempDir is the base for the throwaway configuration directory used
	// when the project did not opt out.
	TempDir string
}

// InfoFilePath returns the administration file path.
func (s *Settings) InfoFilePath() string {
	return filepath.Join(s.WorkspaceDir, InfoFilename)
}

// Repo returns the canonical "{owner}/{name}" slug.
func (s *Settings) Repo() string {
	return s.Owner + "/" + s.Name
}

// Load resolves settings from the environment. A .env file next to the
// process is honored first (without overriding already-exported variables).
func Load() (*Settings, error) {
	loadEnvFile()

	owner := os.Getenv("GIT_REPO_OWNER")
	name := os.Getenv("GIT_BASE_NAME")

	// GitHub Actions exposes "owner/name"; use it when the explicit
	// variables are not set.
	if owner == "" || name == "" {
		if slug := os.Getenv("GITHUB_REPOSITORY"); strings.Contains(slug, "/") {
			parts := strings.SplitN(slug, "/", 2)
			if owner == "" {
				owner = parts[0]
			}
			if name == "" {
				name = parts[1]
			}
		}
	}

	if owner == "" || name == "" {
		return nil, fmt.Errorf("project identity not configured: set GIT_REPO_OWNER and GIT_BASE_NAME (or GITHUB_REPOSITORY)")
	}

	workspace := os.Getenv("WORKSPACE_DIR")
	if workspace == "" {
		workspace = os.Getenv("GITHUB_WORKSPACE")
	}
	if workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		workspace = cwd
	}

	configDir := os.Getenv("PYFUNCEBLE_CONFIG_DIR")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "pyfunceble")
	}

	return &Settings{
		Owner:               owner,
		Name:                name,
		WorkspaceDir:        workspace,
		PyFuncebleConfigDir: configDir,
		TempDir:             os.TempDir(),
	}, nil
}

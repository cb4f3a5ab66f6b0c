package commands

import (
	"fmt"
	"log/slog"

	"github.com/dead-hosts/launcher/internal/config"
	"github.com/dead-hosts/launcher/internal/gitops"
	"github.com/dead-hosts/launcher/internal/logfields"
	"github.com/dead-hosts/launcher/internal/pyfunceble"
	"github.com/dead-hosts/launcher/internal/record"
)

// RunCmd implements the 'run' command: the once-per-job refresh of the
// administration file.
type RunCmd struct {
	Commit bool `help:"Commit the refreshed administration file to the workspace repository"`
}

func (r *RunCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	slog.Info("Refreshing administration file",
		logfields.Repository(settings.Repo()),
		logfields.Path(settings.InfoFilePath()))

	manager, err := record.New(settings)
	if err != nil {
		return fmt.Errorf("failed to initialize administration record: %w", err)
	}

	overrides := map[string]any{}
	if value, err := manager.Get("custom_pyfunceble_config"); err == nil {
		if mapping, ok := value.(map[string]any); ok {
			overrides = mapping
		}
	}
	if _, err := pyfunceble.WriteOverrides(manager.ConfigDir(), overrides); err != nil {
		return err
	}

	if r.Commit {
		message := "Update administration file"
		if mentions := manager.GetPingMentionText(); mentions != "" {
			message += " " + mentions
		}
		if err := gitops.NewClient(settings.WorkspaceDir).CommitFile(config.InfoFilename, message); err != nil {
			return err
		}
	}

	return manager.Close()
}

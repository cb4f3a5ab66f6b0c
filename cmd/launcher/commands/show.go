package commands

import (
	"encoding/json"
	"fmt"

	"github.com/dead-hosts/launcher/internal/config"
	"github.com/dead-hosts/launcher/internal/record"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Field    string `arg:"" optional:"" help:"Field to print"`
	PingText bool   `name:"ping-text" help:"Print the ping mention text instead of a field"`
}

func (s *ShowCmd) Run() error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	manager, err := record.New(settings)
	if err != nil {
		return err
	}
	defer func() { _ = manager.Close() }()

	if s.PingText {
		fmt.Println(manager.GetPingMentionText())
		return nil
	}

	if s.Field == "" {
		return fmt.Errorf("either a field name or --ping-text is required")
	}

	value, err := manager.Get(s.Field)
	if err != nil {
		return err
	}

	out, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

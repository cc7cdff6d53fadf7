package main

import (
	"github.com/osse101/Tycoon_Go/internal/hud"
	"github.com/osse101/Tycoon_Go/internal/server"
)

type HUDCommand struct {
	ui     *UI
	client *apiClient
}

func (c *HUDCommand) Name() string {
	return "hud"
}

func (c *HUDCommand) Description() string {
	return "Print the current HUD of a running server"
}

func (c *HUDCommand) Run(args []string) error {
	if c.ui == nil {
		c.ui = stdoutUI
	}
	if c.client == nil {
		c.client = newAPIClient()
	}

	var view hud.View
	if err := c.client.getJSON(server.PathAPI+server.PathHUD, &view); err != nil {
		return err
	}

	c.ui.Header(view.Text)
	for _, line := range view.Lines {
		c.ui.Plain("  %s", line)
	}
	if view.Cooldown > 0 {
		c.ui.Warning("purchase cooldown: %d ticks", view.Cooldown)
	}
	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/osse101/Tycoon_Go/internal/server"
)

// slowResponse marks a probe worth a warning
const slowResponse = time.Second

type HealthCheckCommand struct {
	ui     *UI
	client *apiClient
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Probe liveness and readiness of a running server"
}

func (c *HealthCheckCommand) Run(args []string) error {
	ui, client := c.deps()
	ui.Header(fmt.Sprintf("Health Check (%s)", client.baseURL))

	for _, path := range []string{server.PathHealthz, server.PathReadyz} {
		var body map[string]interface{}
		start := time.Now()
		if err := client.getJSON(path, &body); err != nil {
			ui.Error("%s: %v", path, err)
			return fmt.Errorf("%s probe failed: %w", path, err)
		}

		duration := time.Since(start)
		if duration > slowResponse {
			ui.Warning("%s: slow response time (%v)", path, duration)
		} else {
			ui.Success("%s: %v (response time: %v)", path, body["status"], duration)
		}
	}
	return nil
}

func (c *HealthCheckCommand) deps() (*UI, *apiClient) {
	if c.ui == nil {
		c.ui = stdoutUI
	}
	if c.client == nil {
		c.client = newAPIClient()
	}
	return c.ui, c.client
}

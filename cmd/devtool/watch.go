package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/osse101/Tycoon_Go/internal/server"
	"github.com/osse101/Tycoon_Go/internal/sse"
)

type WatchEventsCommand struct {
	ui     *UI
	client *apiClient
	ctx    context.Context
}

func (c *WatchEventsCommand) Name() string {
	return "watch-events"
}

func (c *WatchEventsCommand) Description() string {
	return "Stream simulation events (-n count, -types a,b)"
}

func (c *WatchEventsCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	count := fs.Int("n", 0, "stop after n events (0 streams until interrupted)")
	types := fs.String("types", "", "comma separated event types")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.ui == nil {
		c.ui = stdoutUI
	}
	if c.client == nil {
		c.client = newAPIClient()
	}
	ctx := c.ctx
	if ctx == nil {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
	}

	path := server.PathAPI + server.PathEvents
	if *types != "" {
		path += "?" + sse.FilterQueryParam + "=" + url.QueryEscape(*types)
	}
	req, err := c.client.newRequest(path)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)

	// the stream outlives the client's request timeout
	streaming := *c.client.http
	streaming.Timeout = 0
	resp, err := streaming.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	c.ui.Header("Watching " + c.client.baseURL + path)
	seen, err := c.consume(bufio.NewScanner(resp.Body), *count)
	if err != nil && ctx.Err() == nil {
		return err
	}
	c.ui.Info("received %d events", seen)
	return nil
}

// consume prints simulation frames until limit is reached or the stream ends.
// Connection and keepalive frames are not counted.
func (c *WatchEventsCommand) consume(scanner *bufio.Scanner, limit int) (int, error) {
	seen := 0
	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data: ")
		if !ok {
			continue
		}

		var evt sse.Event
		if err := json.Unmarshal([]byte(data), &evt); err != nil {
			c.ui.Warning("malformed frame: %v", err)
			continue
		}
		if evt.Type == sse.EventTypeConnected || evt.Type == sse.EventTypeKeepalive {
			continue
		}

		payload, _ := json.Marshal(evt.Payload)
		c.ui.Plain("[tick %d] %s %s", evt.Tick, evt.Type, payload)
		seen++
		if limit > 0 && seen >= limit {
			return seen, nil
		}
	}
	return seen, scanner.Err()
}

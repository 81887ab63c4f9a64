package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tracemesh-go/internal/cli/client"
)

// statusView is the CLI's view of the agent status payload.
type statusView struct {
	Version     string `json:"version"`
	ActiveSpans int    `json:"active_spans"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show agent status summary",
		Action: agentStatus,
	}
}

// HealthCommand returns the health command.
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check agent health",
		Action: agentHealth,
	}
}

func agentStatus(c *cli.Context) error {
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := cl.Get(ctx, "/v1/status")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var status statusView
	if err := client.ParseResponse(resp, &status); err != nil {
		return err
	}

	return PrintResult(c, status)
}

func agentHealth(c *cli.Context) error {
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := cl.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("agent unreachable at %s: %w", cl.BaseURL(), err)
	}

	if err := client.ParseResponse(resp, nil); err != nil {
		return err
	}

	fmt.Println("Agent is healthy")
	return nil
}

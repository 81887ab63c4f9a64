package command

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tracemesh-go/internal/cli/client"
)

const requestTimeout = 30 * time.Second

// spanView is the CLI's view of a span returned by the agent.
type spanView struct {
	TraceID  string             `json:"trace_id"`
	SpanID   string             `json:"span_id"`
	ParentID string             `json:"parent_id,omitempty" table:"wide"`
	Name     string             `json:"name"`
	Service  string             `json:"service"`
	Resource string             `json:"resource,omitempty" table:"wide"`
	Sampled  bool               `json:"sampled"`
	Tags     map[string]string  `json:"tags,omitempty" table:"wide"`
	Metrics  map[string]float64 `json:"metrics,omitempty" table:"wide"`
}

// startResult is the payload returned when a span is started.
type startResult struct {
	TraceID string `json:"trace_id"`
	SpanID  string `json:"span_id"`
	Sampled bool   `json:"sampled"`
}

// SpanCommand returns the span subcommand group.
func SpanCommand() *cli.Command {
	return &cli.Command{
		Name:  "span",
		Usage: "Span management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "Start a new span",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Operation name", Required: true},
					&cli.StringFlag{Name: "service", Usage: "Service name (required for root spans)"},
					&cli.StringFlag{Name: "resource", Usage: "Resource being operated on"},
					&cli.StringFlag{Name: "parent", Usage: "Parent span ID"},
				},
				Action: spanStart,
			},
			{
				Name:      "get",
				Usage:     "Show an active span",
				ArgsUsage: "<span-id>",
				Action:    spanGet,
			},
			{
				Name:      "finish",
				Usage:     "Finish a span and hand it to the exporter",
				ArgsUsage: "<span-id>",
				Action:    spanFinish,
			},
			{
				Name:      "tag",
				Usage:     "Set or unset a tag on a span",
				ArgsUsage: "<span-id> <key> [value]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "unset", Usage: "Remove the tag instead of setting it"},
				},
				Action: spanTag,
			},
			{
				Name:      "metric",
				Usage:     "Set or unset a metric on a span",
				ArgsUsage: "<span-id> <key> [value]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "unset", Usage: "Remove the metric instead of setting it"},
				},
				Action: spanMetric,
			},
		},
	}
}

func spanStart(c *cli.Context) error {
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	body := map[string]string{
		"name":      c.String("name"),
		"service":   c.String("service"),
		"resource":  c.String("resource"),
		"parent_id": c.String("parent"),
	}
	resp, err := cl.Post(ctx, "/v1/spans", body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var result startResult
	if err := client.ParseResponse(resp, &result); err != nil {
		return err
	}

	return PrintResult(c, result)
}

func spanGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: span get <span-id>")
	}
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := cl.Get(ctx, "/v1/spans/"+url.PathEscape(c.Args().First()))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	var span spanView
	if err := client.ParseResponse(resp, &span); err != nil {
		return err
	}

	return PrintResult(c, span)
}

func spanFinish(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: span finish <span-id>")
	}
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := cl.Post(ctx, "/v1/spans/"+url.PathEscape(c.Args().First())+"/finish", nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if err := client.ParseResponse(resp, nil); err != nil {
		return err
	}

	fmt.Printf("Span %s finished\n", c.Args().First())
	return nil
}

func spanTag(c *cli.Context) error {
	spanID, key, value, err := attributeArgs(c)
	if err != nil {
		return err
	}
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	base := "/v1/spans/" + url.PathEscape(spanID) + "/tags"
	if c.Bool("unset") {
		resp, err := cl.Delete(ctx, base+"/"+url.PathEscape(key))
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		if err := client.ParseResponse(resp, nil); err != nil {
			return err
		}
		fmt.Printf("Tag %s removed\n", key)
		return nil
	}

	resp, err := cl.Put(ctx, base, map[string]string{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if err := client.ParseResponse(resp, nil); err != nil {
		return err
	}
	fmt.Printf("Tag %s set\n", key)
	return nil
}

func spanMetric(c *cli.Context) error {
	spanID, key, value, err := attributeArgs(c)
	if err != nil {
		return err
	}
	cl := AgentClient(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	base := "/v1/spans/" + url.PathEscape(spanID) + "/metrics"
	if c.Bool("unset") {
		resp, err := cl.Delete(ctx, base+"/"+url.PathEscape(key))
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		if err := client.ParseResponse(resp, nil); err != nil {
			return err
		}
		fmt.Printf("Metric %s removed\n", key)
		return nil
	}

	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("metric value must be numeric: %q", value)
	}

	resp, err := cl.Put(ctx, base, map[string]any{"key": key, "value": num})
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if err := client.ParseResponse(resp, nil); err != nil {
		return err
	}
	fmt.Printf("Metric %s set\n", key)
	return nil
}

// attributeArgs validates the positional arguments shared by the tag
// and metric commands.
func attributeArgs(c *cli.Context) (spanID, key, value string, err error) {
	if c.Bool("unset") {
		if c.NArg() != 2 {
			return "", "", "", fmt.Errorf("usage: span %s --unset <span-id> <key>", c.Command.Name)
		}
		return c.Args().Get(0), c.Args().Get(1), "", nil
	}
	if c.NArg() != 3 {
		return "", "", "", fmt.Errorf("usage: span %s <span-id> <key> <value>", c.Command.Name)
	}
	return c.Args().Get(0), c.Args().Get(1), c.Args().Get(2), nil
}

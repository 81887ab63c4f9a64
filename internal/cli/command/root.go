// Package command provides CLI command definitions for tracemesh-cli.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tracemesh-go/internal/cli/client"
	"github.com/yndnr/tracemesh-go/internal/cli/output"
	"github.com/yndnr/tracemesh-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "tracemesh-cli",
		Usage:   "TraceMesh agent command-line tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SpanCommand(),
			StatusCommand(),
			HealthCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Agent intake address (e.g., 127.0.0.1:8128)",
			EnvVars: []string{"TRACEMESH_SERVER"},
			Value:   "127.0.0.1:8128",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server string
	Output string
	Wide   bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server: c.String("server"),
		Output: c.String("output"),
		Wide:   c.Bool("wide"),
	}
}

// AgentClient builds a client for the configured agent address.
func AgentClient(c *cli.Context) *client.Client {
	return client.New(c.String("server"))
}

// PrintResult formats data according to the output flag.
func PrintResult(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output), flags.Wide)
	return formatter.Format(os.Stdout, data)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

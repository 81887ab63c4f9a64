package command

import (
	"flag"
	"testing"

	"github.com/urfave/cli/v2"
)

func TestApp(t *testing.T) {
	app := App()
	if app == nil {
		t.Fatal("App() returned nil")
	}

	if app.Name != "tracemesh-cli" {
		t.Errorf("Name = %q, want %q", app.Name, "tracemesh-cli")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}

	requiredCommands := []string{"span", "status", "health"}
	for _, name := range requiredCommands {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, f := range app.Flags {
		flagNames[f.Names()[0]] = true
	}

	requiredFlags := []string{"server", "output", "wide"}
	for _, name := range requiredFlags {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	app := App()

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("server", "", "")
	set.String("output", "", "")
	set.Bool("wide", false, "")
	if err := set.Parse([]string{"--server", "10.0.0.1:8128", "--output", "json", "--wide"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	ctx := cli.NewContext(app, set, nil)
	flags := ParseGlobalFlags(ctx)

	if flags.Server != "10.0.0.1:8128" {
		t.Errorf("Server = %q, want %q", flags.Server, "10.0.0.1:8128")
	}
	if flags.Output != "json" {
		t.Errorf("Output = %q, want %q", flags.Output, "json")
	}
	if !flags.Wide {
		t.Error("Wide = false, want true")
	}
}

func TestSpanCommand_Subcommands(t *testing.T) {
	cmd := SpanCommand()

	subNames := make(map[string]bool)
	for _, sub := range cmd.Subcommands {
		subNames[sub.Name] = true
	}

	for _, name := range []string{"start", "get", "finish", "tag", "metric"} {
		if !subNames[name] {
			t.Errorf("missing span subcommand: %s", name)
		}
	}
}

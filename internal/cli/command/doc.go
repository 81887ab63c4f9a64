// Package command provides CLI command definitions for tracemesh-cli.
//
// It uses urfave/cli/v2 for command parsing. Commands talk to a running
// tracemesh agent over its span intake API:
//
//	span start/get/finish/tag/metric  manage spans
//	status                            agent status summary
//	health                            liveness probe
//
// The agent address comes from --server or TRACEMESH_SERVER.
//
// @design DS-0503
package command

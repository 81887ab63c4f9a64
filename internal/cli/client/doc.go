// Package client provides HTTP communication with a tracemesh agent
// for tracemesh-cli.
//
// The client wraps the agent's span intake API and unwraps its JSON
// response envelope, turning error responses into Go errors that carry
// the agent's structured error code.
//
// @design DS-0501
package client

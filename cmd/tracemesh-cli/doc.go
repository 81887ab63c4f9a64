// tracemesh-cli is the command-line tool for inspecting and driving a
// running tracemesh agent.
//
// It talks to the agent's span intake API and supports starting,
// tagging, and finishing spans by hand, plus status and health checks:
//
//	tracemesh-cli span start --name http.request --service checkout
//	tracemesh-cli span tag tmsp-... http.method GET
//	tracemesh-cli span finish tmsp-...
//	tracemesh-cli status -o json
//
// @design DS-0504
package main

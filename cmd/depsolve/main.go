// Command depsolve resolves package-version install requests against a
// catalog using a SAT-based dependency solver.
package main

import "depsolve/internal/cli"

func main() {
	cli.Execute()
}

// kinetic-bench exercises the simulation core with three workloads:
// entity churn, transform update throughput and collision throughput.
// These are measurement harnesses, not part of the engine contract.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

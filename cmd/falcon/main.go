// Command falcon generates Falcon key pairs, signs messages and verifies
// signatures. Keys and signature bundles are JSON files in --keys-dir.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"netlens reads the kernel socket tables through procfs and netlink and is only supported on Linux.",
	)
	os.Exit(1)
}

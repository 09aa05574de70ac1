// Command alertutil renders emergency alert XML bodies and checks message content.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

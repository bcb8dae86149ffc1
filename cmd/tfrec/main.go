// Command tfrec inspects, verifies and repairs record streams.
package main

import (
	"github.com/hupe1980/tfrec/cmd/tfrec/cmd"
)

func main() {
	cmd.Execute()
}

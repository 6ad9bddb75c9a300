// Command satchel is the CLI for the Satchel profile store.
package main

import "github.com/mesh-intelligence/satchel/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/kamal-hamza/storefront-cli/cmd"

func main() {
	cmd.Execute()
}

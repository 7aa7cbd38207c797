package main

import "github.com/kamal-hamza/wp-cli/cmd"

func main() {
	cmd.Execute()
}

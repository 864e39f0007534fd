package main

import "github.com/obscura-corp/obscura-cli/cmd"

func main() {
	cmd.Execute()
}

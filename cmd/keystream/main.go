package main

import "github.com/mmcloughlin/keystream/cmd/keystream/cmd"

func main() {
	cmd.Execute()
}

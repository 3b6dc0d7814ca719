package main

import "github.com/notargets/gofluid/cmd"

func main() {
	cmd.Execute()
}

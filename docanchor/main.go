package main

import "github.com/LumeraProtocol/docanchor/docanchor/cmd"

func main() {
	cmd.Execute()
}

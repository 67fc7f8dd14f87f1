package main

import "github.com/trainer400/CampoMinato/cmd"

func main() {
	cmd.Execute()
}

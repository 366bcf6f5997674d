package main

import "github.com/nfrund/botsamples/cmd/botsample/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/Rorical/RoriBug/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/edp1096/symnet/cmd/symnet/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/naka-gawa/loc-chart/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/lakshayg/face-search/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/tranvictor/nftmeta/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/ilsrd/ilsrd/cmd"

func main() {
	cmd.Execute()
}

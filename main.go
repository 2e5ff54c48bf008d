package main

import "github.com/theirongolddev/lifeclock/cmd"

func main() {
	cmd.Execute()
}

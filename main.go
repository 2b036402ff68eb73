package main

import "github.com/jsminer/jsminer/cmd"

func main() {
	cmd.Execute()
}

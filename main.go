package main

import "item-simulator/cmd"

func main() {
	cmd.Execute()
}

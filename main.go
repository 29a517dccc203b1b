package main

import "github.com/jsphweid/tonegen/cmd"

func main() {
	cmd.Execute()
}

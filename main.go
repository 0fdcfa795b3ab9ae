package main

import "github.com/lexfield/poemcoder/cmd"

func main() {
	cmd.Execute()
}

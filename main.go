package main

import "github.com/naka-gawa/github-wrapped/cmd"

func main() {
	cmd.Execute()
}

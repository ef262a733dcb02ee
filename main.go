package main

import "github.com/douhashi/issuepipe/cmd"

func main() {
	cmd.Execute()
}

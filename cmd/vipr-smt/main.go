package main

import "github.com/vipr-check/vipr-smt/pkg/cmd"

func main() {
	cmd.Execute()
}

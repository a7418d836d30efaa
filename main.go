package main

import "github.com/tkellman/cashsim/cmd"

func main() {
	cmd.Execute()
}

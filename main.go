package main

import "github.com/AI-MHT/dash/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"jobpulse/cmd"
)

func main() {
	cmd.Execute()
}

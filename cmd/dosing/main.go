package main

import "github.com/tidepool-org/dosing/cmd/dosing/command"

func main() {
	command.Execute()
}

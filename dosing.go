package main

import "github.com/tidepool-org/dosing/api"

func main() {
	api.MainLoop()
}

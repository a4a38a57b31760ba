package main

import "github.com/kozaktomas/immich-sync/cmd"

func main() {
	cmd.Execute()
}

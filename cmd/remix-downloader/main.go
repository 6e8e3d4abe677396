package main

import (
	"github.com/Kim2091/RTX-Remix-Downloader/cli/cmd"
)

func main() {
	cmd.Execute()
}

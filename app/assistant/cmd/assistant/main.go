package main

import (
	"os"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

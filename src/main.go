package main

import (
	"github.com/ProjectsTask/EasySwapTrade/src/cmd"
)

func main() {
	cmd.Execute()
}

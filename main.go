package main

import (
	"github.com/shanecorder/slurm-schmutz/cmd/cli"
	_ "github.com/shanecorder/slurm-schmutz/pkg/logger"
)

func main() {
	cli.Execute()
}

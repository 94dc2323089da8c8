package main

import (
	"bufio"
	"os"

	"github.com/atiedebee/huffcomp/internal/cli"
	"github.com/atiedebee/huffcomp/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := cli.ParseArgs(args)
	if err != nil {
		logger.New(os.Stderr, false).Errorf("problem parsing arguments: %v", err)
		return cli.ExitCode(err)
	}
	log := logger.New(os.Stderr, cfg.Verbose)

	w := bufio.NewWriter(os.Stdout)
	err = cli.Run(cfg, w, log)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Errorf("%s failed: %v", cfg.Mode, err)
	}
	return cli.ExitCode(err)
}

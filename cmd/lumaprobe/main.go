package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumalang/luma/internal/runtime"
	"github.com/lumalang/luma/pkg/probe"
)

func main() {
	workload := flag.String("workload", "", "run a YAML workload spec instead of the interactive probe")
	noColor := flag.Bool("no-color", false, "disable ANSI color")
	flag.Parse()

	if *workload != "" {
		w, err := probe.LoadWorkload(*workload)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := w.Run(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	repl := probe.NewREPL(probe.NewSession(runtime.New()))
	if *noColor {
		repl.DisableColor()
	}
	os.Exit(repl.Run())
}

package main

import (
	"os"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/colors"
	"github.com/cristianoliveira/chatbuf/internal/logging"
)

func main() {
	colors.TraceInfo(colors.Trace{Component: "startup", Action: "main", Status: "started"})
	err := cmd.Execute()
	waitForHooks()
	_ = logging.ShutdownGlobal()
	if err != nil {
		colors.TraceError(colors.Trace{Component: "startup", Action: "main", Status: "failed", Err: err})
		os.Exit(1)
	}
	colors.TraceInfo(colors.Trace{Component: "startup", Action: "main", Status: "completed"})
}

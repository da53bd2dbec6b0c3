package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomfield/reelcode/internal/app"
	"github.com/atomfield/reelcode/internal/config"
	"github.com/atomfield/reelcode/internal/logging"
	"github.com/atomfield/reelcode/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	events.App.Start(startupTracePayload(cfg))

	if err := app.Run(cfg.App); err != nil {
		events.App.Exit(err)
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "reelcode: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload assembles the app.start trace record. The flags map
// mirrors what config parsed so a log reader can reconstruct the invocation
// without the original command line.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for name, value := range cfg.Flags {
		flags[name] = value
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"listen": cfg.App.Listen,
		"config": cfg.App,
		"tty":    collectTTYDetails(),
	}

	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}

	return payload
}

type terminalReport struct {
	Detected *terminalSize `json:"detected,omitempty"`
	Probes   []probeReport `json:"probes"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type probeReport struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"isTerminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails sizes each standard descriptor. The first descriptor
// that reports a usable size becomes the detected terminal.
func collectTTYDetails() terminalReport {
	descriptors := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}

	report := terminalReport{Probes: make([]probeReport, 0, len(descriptors))}
	for _, d := range descriptors {
		report.Probes = append(report.Probes, probeDescriptor(d.name, d.file))
	}
	for _, probe := range report.Probes {
		if report.Detected == nil && probe.Error == "" && probe.IsTerminal {
			report.Detected = &terminalSize{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
	}
	return report
}

func probeDescriptor(name string, f *os.File) probeReport {
	probe := probeReport{Name: name}
	fd := int(f.Fd())
	probe.IsTerminal = term.IsTerminal(fd)
	if !probe.IsTerminal {
		return probe
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width = width
	probe.Height = height
	return probe
}

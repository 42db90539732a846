package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"pdfxtract/internal/app"
)

func main() {
	cliApp := &cli.App{
		Name:  "pdfxtract",
		Usage: "extract structured data from PDF documents with LLMs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "extract structured data from one PDF",
				ArgsUsage: "<file.pdf>",
				Flags: append(runFlags(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file path (default: <stem>_<template>_extracted.<format>)"},
				),
				Action: app.ExtractAction,
			},
			{
				Name:      "batch",
				Usage:     "extract structured data from every PDF in a directory",
				ArgsUsage: "<dir>",
				Flags: append(runFlags(),
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Usage: "directory for results and batch summaries (default: input dir)"},
					&cli.IntFlag{Name: "max-files", Usage: "process at most N files (0 = all)"},
				),
				Action: app.BatchAction,
			},
			{
				Name:   "templates",
				Usage:  "list built-in extraction templates",
				Action: app.TemplatesAction,
			},
			{
				Name:   "models",
				Usage:  "list documented models and credential status",
				Action: app.ModelsAction,
			},
			{
				Name:   "history",
				Usage:  "show recent extraction runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "number of runs to show"},
				},
				Action: app.HistoryAction,
			},
			{
				Name:      "info",
				Usage:     "analyze a PDF, or show configuration and run statistics",
				ArgsUsage: "[file.pdf]",
				Action:    app.InfoAction,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		// cli.Exit already printed; anything else goes to stderr here
		if _, ok := err.(cli.ExitCoder); !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}
}

// runFlags are the knobs shared by extract and batch.
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "built-in template name or template file path"},
		&cli.StringFlag{Name: "custom-template", Usage: "custom template JSON file (takes precedence over --template)"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output format: json, jsonl, csv, html"},
		&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "model ID (gemini-* or gpt-*)"},
		&cli.IntFlag{Name: "passes", Usage: "extraction passes 1-3 (default: template setting)"},
		&cli.IntFlag{Name: "workers", Usage: "parallel chunk workers (default: template setting)"},
		&cli.BoolFlag{Name: "visualize", Usage: "also write .jsonl and .html review artifacts"},
		&cli.IntFlag{Name: "max-pages", Usage: "read at most N pages per PDF (0 = all)"},
		&cli.BoolFlag{Name: "no-history", Usage: "skip recording this run in the history ledger"},
	}
}

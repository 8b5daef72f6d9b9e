package main

import (
	"context"

	"webprint/cmd/webprint/report"
	"webprint/cmd/webprint/scan"
	"webprint/cmd/webprint/server"

	"github.com/spf13/cobra"
)

func Execute() error {
	var rootCmd = &cobra.Command{
		Use:   "webprint",
		Short: "A WhatWeb fingerprint scan and reporting tool",
		Long:  `Webprint drives WhatWeb across a list of target URLs, stores one JSON scan record per target, and aggregates the records into CSV reports of selected plugin fields`,
	}

	// Initialize hooks
	scan.InitHooks()

	// Add commands
	rootCmd.AddCommand(scan.NewScanCommand())
	rootCmd.AddCommand(scan.NewListConfigsCommand())
	rootCmd.AddCommand(scan.NewListHooksCommand())
	rootCmd.AddCommand(report.NewReportCommand())
	rootCmd.AddCommand(server.NewServerCommand())
	return rootCmd.ExecuteContext(context.Background())
}

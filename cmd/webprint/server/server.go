package server

import (
	"fmt"

	"webprint/api/routes"
	"webprint/internal/config"
	"webprint/internal/database"

	"github.com/spf13/cobra"
)

type ServerOpts struct {
	Port int
	Ip   string
}

func NewServerCommand() *cobra.Command {
	serverConfig := &ServerOpts{}

	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Start the webprint server",
		Long:  `Start the webprint server to launch scans and generate reports via a JSON API`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
			cfg := config.LoadConfig()
			database.InitDB(cfg)
			router := routes.InitRouter(database.DB)
			router.Run(fmt.Sprintf("%s:%d", serverConfig.Ip, serverConfig.Port))
		},
	}

	serverCmd.Flags().IntVarP(&serverConfig.Port, "port", "p", 8080, "Port to run the server on")
	serverCmd.Flags().StringVarP(&serverConfig.Ip, "ip", "i", "localhost", "IP address to bind the server to")

	return serverCmd
}

package cmd

import (
	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveBot  string
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bot server",
	Long: `Start the HTTP server hosting one sample bot on /api/messages.

Configuration is read from the environment and an optional .env file
(MicrosoftAppId, MicrosoftAppPassword, MicrosoftAppTenantId, HOST, PORT,
BOT_NAME). Flags override the environment.

Examples:
  botsample serve                     # echo bot on localhost:3978
  botsample serve --bot welcome       # welcome-user bot
  botsample serve --host 0.0.0.0 --port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		if cmd.Flags().Changed("bot") {
			cfg.BotName = serveBot
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		s, err := server.New(cfg)
		if err != nil {
			return err
		}
		return s.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveBot, "bot", "b", "", "Bot to host (echo, welcome)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to listen on")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on")
}

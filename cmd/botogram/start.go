package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MatyiFKBT/botogram/internal/api"
	"github.com/MatyiFKBT/botogram/internal/core"
	"github.com/MatyiFKBT/botogram/internal/logger"
)

var (
	configFile string

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the bot poll loop",
		Long:  "Start the bot, poll Telegram for updates and dispatch them to the hook chain",
		Run: func(cmd *cobra.Command, args []string) {
			config, err := core.LoadConfig(configFile)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			fmt.Printf("Starting botogram with config: %s\n", configFile)
			fmt.Printf("Process backlog: %v\n", config.Bot.ProcessBacklog)
			fmt.Printf("Poll timeout: %s\n", config.Bot.PollTimeout)

			logConfig := logger.Config{
				Level:        config.Logging.Level,
				File:         config.Logging.File,
				MaxSize:      config.Logging.MaxSize,
				MaxBackups:   config.Logging.MaxBackups,
				MaxAge:       config.Logging.MaxAge,
				Compress:     config.Logging.Compress,
				EnableStdout: config.Logging.EnableStdout,
			}
			if err := logger.Init(logConfig); err != nil {
				log.Fatalf("Failed to initialize logger: %v", err)
			}

			logger.WithFields(logrus.Fields{
				"config_file": configFile,
				"log_level":   config.Logging.Level,
			}).Info("logger-initialized")

			client, err := api.NewTelegramClient(config.Bot.Token)
			if err != nil {
				log.Fatalf("Failed to connect to Telegram: %v", err)
			}
			logger.WithField("bot_username", client.Username()).Info("connected-to-telegram")

			bot := core.NewBot(config, client)

			// Stop the poll loop on SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Errorf("bot-stopped-with-error: %v", err)
				os.Exit(1)
			}
			logger.Info("botogram-shut-down")
		},
	}
)

func init() {
	startCmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Configuration file path")
}

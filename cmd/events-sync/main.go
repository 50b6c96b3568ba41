package main

import (
	"fmt"
	"log"
	"os"

	"github.com/SergeyKozhin/events-sync/internal/config"
	"github.com/urfave/cli/v2"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	app := &cli.App{
		Name:   "events-sync",
		Usage:  "Keep a local view of the events collection in sync with the server.",
		Action: serveAction(logger),
		Commands: []*cli.Command{
			serveCommand(logger),
			listCommand(logger),
			loginCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorw("command failed", "err", err)
		closer.Fatalln(fmt.Sprintf("events-sync: %v", err))
	}
	closer.Close()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}

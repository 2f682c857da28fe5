package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/disersoft-code/traductor-pmv/internal/api"
	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/homeassistant"
	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/mqtt"
	"github.com/disersoft-code/traductor-pmv/internal/ntcip"
	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

var version = "dev"

func main() {
	configFile := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewLogger(cfg.Log)

	// Validate already checked the zone.
	loc, _ := cfg.Location()
	p := panel.NewPanel(ntcip.NewSNMPClient(cfg.SNMP, logger), logger, loc)
	logger.Info("Starting traductor-pmv %s, sign times in %s", version, p.Location())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{
		Config:  cfg.HTTP,
		Logger:  logger,
		Gateway: p,
		Version: version,
	}

	var bridge *mqtt.MQTT
	if cfg.MQTT.Enabled {
		bridge = mqtt.NewMQTT(&cfg.MQTT, cfg.Signs, p, logger)
		if err := bridge.Connect(); err != nil {
			logger.Error("Failed to connect to MQTT broker: %v", err)
			os.Exit(1)
		}
		deps.Events = bridge

		if cfg.HomeAssistant.Discovery {
			ha := homeassistant.New(&cfg.HomeAssistant, bridge, cfg.Signs, logger)
			ha.Start()
		}

		go bridge.Poll(ctx, time.Duration(cfg.PollInterval)*time.Second)
	}

	server, err := api.New(deps)
	if err != nil {
		logger.Error("Failed to create HTTP server: %v", err)
		os.Exit(1)
	}
	if err := server.Start(); err != nil {
		logger.Error("Failed to start HTTP server: %v", err)
		os.Exit(1)
	}

	<-ctx.Done()

	logger.Info("Shutting down...")
	if err := server.Close(context.Background()); err != nil {
		logger.Error("HTTP shutdown: %v", err)
	}
	if bridge != nil {
		bridge.Close()
	}
}

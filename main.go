// @title Ranked Choice Polls API
// @version 1.0
// @description Create polls, collect ranked ballots and tabulate instant-runoff results

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/tydonelson/ranked-choice/docs"

	"github.com/spf13/viper"
	"github.com/tydonelson/ranked-choice/api"
	"github.com/tydonelson/ranked-choice/logging"
)

func main() {
	// Load env
	if err := api.SetupViper(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	logging.BootstrapLogger(viper.GetString("log.level"))

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}

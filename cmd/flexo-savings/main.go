package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/logging"
	"github.com/iwvelando/flexo-savings/internal/projection"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/output"
	"github.com/iwvelando/flexo-savings/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// FLEXO_* overrides may live in a .env file
	_ = godotenv.Load(constants.DefaultEnvFile)

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := projection.GetProjections(logger, *conf)
	if err != nil {
		logger.Fatal("failed to compute savings projections",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := output.Write(os.Stdout, outputFormat, results); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

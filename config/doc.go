// Package config loads taskflow configuration.
//
// Values are layered, lowest precedence first: registered defaults, a
// config.yml file, a .env file, prefixed environment variables and finally
// explicitly set command-line flags. Viper does the merging; godotenv loads
// .env files.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("taskflow", &cfg,
//	    config.WithEnvPrefix("TASKFLOW"),
//	    config.WithFlags(flags),
//	)
//
// With the TASKFLOW prefix, TASKFLOW_ENGINE_THRESHOLD overrides
// engine.threshold.
package config

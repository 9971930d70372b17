// Package config provides configuration management for tcg-portfolio.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a TOML file and TCG_* environment variables
//   - Saving settings for `tcg-portfolio config init`
//   - Conversion to RetryPolicy and client Options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get the values the tracker has always used:
//
//	settings := config.DefaultSettings()
//	// portfolio_data.json and generated_cards.html in the working directory
//	// 1.2s between lookups, 3 attempts per search strategy
//
// # Loading
//
//	settings, err := config.Load("")            // search tcg-portfolio.toml
//	settings, err := config.Load("custom.toml") // explicit file, must exist
//
// Precedence, lowest first: defaults, config file, .env, environment.
// Every key can be overridden with TCG_<KEY>, e.g. TCG_PACING_INTERVAL=2s.
//
// # Saving Settings
//
//	settings.DataFile = "/srv/cards/portfolio_data.json"
//	err := settings.Save("tcg-portfolio.toml")
package config

// Package config loads typed configuration structs from the environment.
// A .env file in the working directory is read once, then struct fields are
// populated from env tags:
//
//	type APIConfig struct {
//		BaseURL string `env:"STOREFRONT_API_URL" envDefault:"http://localhost:3001"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil { ... }
package config

// Package config loads typed configuration structs from environment
// variables using caarlos0/env tags, with .env support through godotenv.
//
//	type Config struct {
//		APIURL string `env:"API_URL" envDefault:"http://localhost:5000/api"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

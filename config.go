package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port int `json:"port"`
	Env string `json:"env"`
	Pepper string `json:"pepper"`
	SessionKey string `json:"session_key"`
	Database PostgresConfig `json:"database"`
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}

type PostgresConfig struct {
	Host string `json:"host"`
	Port int `json:"port"`
	User string `json:"user"`
	Password string `json:"password"`
	Name string `json:"name"`
}

// ConnectionInfo assembles the postgres DSN from the config values.
// A DATABASE_URL environment variable wins over the assembled string,
// which is how test runs point the app at an isolated database.
func (pc PostgresConfig) ConnectionInfo() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if pc.Password == "" {
		return fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Name)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", pc.Host, pc.Port, pc.User, pc.Password, pc.Name)
}

func DefaultConfig() Config {
	return Config{
		Port: 1111,
		Env: "dev",
		Pepper: "secret-random-string",
		SessionKey: "secret-session-key",
		Database: DefaultPostgresConfig(),
	}
}

func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host: "localhost",
		Port: 5432,
		User: "postgres",
		Password: "",
		Name: "warbler",
	}
}

// LoadConfig reads configuration from a .config.json file, falling back to
// the dev defaults if the file is absent. Environment variables from a .env
// file are loaded first, so DATABASE_URL overrides work in either case.
// In production the file is required and its absence is a panic.
func LoadConfig(prodRequired bool) Config {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Successfully loaded .env")
	}
	f, err := os.Open(".config.json")
	if err != nil {
		if prodRequired {
			panic("No .config.json file provided, refusing to start in production.")
		}
		return DefaultConfig()
	}
	var c Config
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		panic(err)
	}
	fmt.Println("Successfully loaded .config.json")
	return c
}

package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

type (
	Config struct {
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		DataDir          string
		Storage          string
		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail string

		Server struct {
			Address         string
			ShutdownTimeout time.Duration
		}

		Media struct {
			MaxBytes     int64
			MaxDimension int
		}
	}
)

// NewConfig reads the configuration from the environment, after loading `config/.env.<env>` if it exists.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Missing Work")
	v.SetDefault("dataDir", "data")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("media.maxBytes", int64(5*1024*1024))
	v.SetDefault("media.maxDimension", 0)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("storage", StorageMemory)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		DataDir:          v.GetString("dataDir"),
		Storage:          strings.ToLower(v.GetString("storage")),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		DefaultFromEmail: v.GetString("defaultFromEmail"),
	}
	conf.Server.Address = v.GetString("server.address")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.Media.MaxBytes = v.GetInt64("media.maxBytes")
	conf.Media.MaxDimension = v.GetInt("media.maxDimension")
	return conf
}

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

type Config struct {
	AppName  string
	Version  string
	Env      string
	Debug    bool
	TestMode bool

	Server struct {
		StudentAddr     string
		GradeAddr       string
		ReceiverAddr    string
		ShutdownTimeout time.Duration
	}

	// Database.Path selects the store: empty means the in-process map store,
	// ":memory:" or a file path means sqlite.
	Database struct {
		Path string
		Seed bool
	}

	StudentService struct {
		URL     string
		Timeout time.Duration
	}

	Webhook struct {
		URL     string
		Enabled bool
		Timeout time.Duration
	}

	RollbarToken string
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Gradebook")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("studentAddr", ":5001")
	v.SetDefault("gradeAddr", ":5002")
	v.SetDefault("receiverAddr", ":5005")
	v.SetDefault("shutdownTimeout", 20*time.Second)
	v.SetDefault("databasePath", "")
	v.SetDefault("databaseSeed", true)
	v.SetDefault("studentServiceUrl", "http://student-service:5001")
	v.SetDefault("studentServiceTimeout", 5*time.Second)
	v.SetDefault("webhookUrl", "http://webhook-receiver.external-services.svc.cluster.local:5005")
	v.SetDefault("webhookEnabled", true)
	v.SetDefault("webhookTimeout", 5*time.Second)
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	v.SetEnvPrefix(env)

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
		AppName:      v.GetString("appName"),
		Version:      v.GetString("version"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     testMode,
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.StudentAddr = v.GetString("studentAddr")
	conf.Server.GradeAddr = v.GetString("gradeAddr")
	conf.Server.ReceiverAddr = v.GetString("receiverAddr")
	conf.Server.ShutdownTimeout = v.GetDuration("shutdownTimeout")
	conf.Database.Path = v.GetString("databasePath")
	conf.Database.Seed = v.GetBool("databaseSeed")
	conf.StudentService.URL = v.GetString("studentServiceUrl")
	conf.StudentService.Timeout = v.GetDuration("studentServiceTimeout")
	conf.Webhook.URL = v.GetString("webhookUrl")
	conf.Webhook.Enabled = v.GetBool("webhookEnabled")
	conf.Webhook.Timeout = v.GetDuration("webhookTimeout")
	return conf
}

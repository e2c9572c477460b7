package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("appName", "CourseAdmin")
	Conf.SetDefault("apiBaseURL", "http://localhost:8080")
	Conf.SetDefault("requestTimeout", 30*time.Second)
	Conf.SetDefault("uploadMaxBytes", int64(2<<20)) // upload form caps files at 2 MB
	Conf.SetDefault("tokenPath", filepath.Join(Getwd(), "config", ".token"))
	Conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		Conf.SetDefault("testMode", true)
	}
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()

	checkConf()
}

// checkConf panics on a configuration that can never work.
func checkConf() {
	vala.BeginValidation().Validate(
		vala.StringNotEmpty(Conf.GetString("apiBaseURL"), "apiBaseURL"),
		vala.StringNotEmpty(Conf.GetString("appName"), "appName"),
		vala.GreaterThan(int(Conf.GetInt64("uploadMaxBytes")), 0, "uploadMaxBytes"),
	).CheckAndPanic()
}

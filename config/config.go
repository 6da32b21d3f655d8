package config

import (
	"os"

	"github.com/spf13/viper"
)

// SetupConfig loads configuration from a .env file (when present) and the
// process environment. Missing files are not an error; a library must work
// with environment variables alone.
func SetupConfig() error {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	viper.SetConfigName(envFilePath)
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

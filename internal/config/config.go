package config

import (
	"log"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Console ConsoleConfig
	Store   StoreConfig
}

type ConsoleConfig struct {
	Env     string
	LogFile string
}

type StoreConfig struct {
	DataDir      string
	UserFile     string
	ProductFile  string
	CategoryFile string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("CONSOLE_ENV", "development")
	viper.SetDefault("LOG_FILE", "console.log")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("USER_FILE", "User.txt")
	viper.SetDefault("PRODUCT_FILE", "Product.txt")
	viper.SetDefault("CATEGORY_FILE", "Category.txt")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Console: ConsoleConfig{
			Env:     viper.GetString("CONSOLE_ENV"),
			LogFile: viper.GetString("LOG_FILE"),
		},
		Store: StoreConfig{
			DataDir:      viper.GetString("DATA_DIR"),
			UserFile:     viper.GetString("USER_FILE"),
			ProductFile:  viper.GetString("PRODUCT_FILE"),
			CategoryFile: viper.GetString("CATEGORY_FILE"),
		},
	}
}

// UserPath returns the user store path under the data directory.
func (c *StoreConfig) UserPath() string {
	return filepath.Join(c.DataDir, c.UserFile)
}

// ProductPath returns the product store path under the data directory.
func (c *StoreConfig) ProductPath() string {
	return filepath.Join(c.DataDir, c.ProductFile)
}

// CategoryPath returns the category store path under the data directory.
func (c *StoreConfig) CategoryPath() string {
	return filepath.Join(c.DataDir, c.CategoryFile)
}

package config

import (
	"flag"
	"github.com/ilyakaznacheev/cleanenv"
	"os"
	"time"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	Storage    Storage    `yaml:"storage"`
	Database   Database   `yaml:"database"`
	Mongo      Mongo      `yaml:"mongo"`
	Weather    Weather    `yaml:"weather"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

type Storage struct {
	// Driver is one of "postgres", "mongo" or "memory".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type Database struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-default:"postgres"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env-default:"table_booker"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Mongo struct {
	URI        string `yaml:"uri" env:"MONGODB_CONNSTRING" env-default:"mongodb://localhost:27017"`
	Database   string `yaml:"database" env-default:"table-booker"`
	Collection string `yaml:"collection" env-default:"bookings"`
}

type Weather struct {
	BaseURL string        `yaml:"base_url" env-default:"https://api.openweathermap.org"`
	APIKey  string        `yaml:"api_key" env:"OPENWEATHER_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	BasePath    string        `yaml:"base_path" env-default:"/api"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// AllowedOrigins lists the CORS origins; "*" allows any.
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// MustLoad reads the config file named by --config or CONFIG_PATH and panics on failure.
func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

// fetchConfigPath prefers the command line flag over the environment.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

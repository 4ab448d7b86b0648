package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Quiz     Quiz
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTLMin  int
	RefreshTTLMin int
	BcryptCost    int
}

type Quiz struct {
	DefaultQuestionCount   int
	DefaultDurationMinutes int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_TTL_MINUTES", 7*24*60)
	viper.SetDefault("BCRYPT_COST", 12)
	viper.SetDefault("QUIZ_DEFAULT_QUESTION_COUNT", 10)
	viper.SetDefault("QUIZ_DEFAULT_DURATION_MINUTES", 15)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.AccessSecret = viper.GetString("JWT_ACCESS_SECRET")
	config.Auth.RefreshSecret = viper.GetString("JWT_REFRESH_SECRET")
	config.Auth.AccessTTLMin = viper.GetInt("ACCESS_TOKEN_TTL_MINUTES")
	config.Auth.RefreshTTLMin = viper.GetInt("REFRESH_TOKEN_TTL_MINUTES")
	config.Auth.BcryptCost = viper.GetInt("BCRYPT_COST")

	config.Quiz.DefaultQuestionCount = viper.GetInt("QUIZ_DEFAULT_QUESTION_COUNT")
	config.Quiz.DefaultDurationMinutes = viper.GetInt("QUIZ_DEFAULT_DURATION_MINUTES")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}

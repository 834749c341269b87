package config

import (
	"github.com/spf13/viper"

	"bookstore-catalog/internal/infrastructure/database"
)

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "bookstore")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "bookstore_catalog")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "5m")
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", "1m")
	v.SetDefault("DB_HEALTH_CHECK_PERIOD", "1m")
	v.SetDefault("DB_MAX_RETRIES", 5)
	v.SetDefault("DB_RETRY_DELAY", "1s")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
}

func loadDatabaseConfig(v *viper.Viper) database.DBConfig {
	return database.DBConfig{
		Host:              v.GetString("DB_HOST"),
		Port:              v.GetInt("DB_PORT"),
		Username:          v.GetString("DB_USER"),
		Password:          v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		SSLMode:           v.GetString("DB_SSLMODE"),
		MaxConns:          v.GetInt32("DB_MAX_CONNS"),
		MinConns:          v.GetInt32("DB_MIN_CONNS"),
		MaxConnLifetime:   v.GetDuration("DB_MAX_CONN_LIFETIME"),
		MaxConnIdleTime:   v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
		HealthCheckPeriod: v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
		MaxRetries:        v.GetInt("DB_MAX_RETRIES"),
		RetryDelay:        v.GetDuration("DB_RETRY_DELAY"),
		ConnectTimeout:    v.GetDuration("DB_CONNECT_TIMEOUT"),
	}
}

func setRedisDefaults(v *viper.Viper) {
	v.SetDefault("REDIS_HOST", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "catalog")
}

func loadRedisConfig(v *viper.Viper) database.RedisConfig {
	return database.RedisConfig{
		Host:      v.GetString("REDIS_HOST"),
		Password:  v.GetString("REDIS_PASSWORD"),
		DB:        v.GetInt("REDIS_DB"),
		KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
	}
}

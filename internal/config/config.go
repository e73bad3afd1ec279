package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	Env           string
	MongoURI      string // empty means run on the in-memory store
	MongoDB       string
	DefaultLocale string

	// Fallback coordinate used when every location strategy fails, and
	// the geofence seeded into an empty locations collection.
	DefaultLatitude       float64
	DefaultLongitude      float64
	DefaultLocationName   string
	DefaultLocationRadius float64
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:                  getEnv("PORT", "3000"),
		Env:                   getEnv("ENV", "development"),
		MongoURI:              getEnv("MONGODB_URI", ""),
		MongoDB:               getEnv("MONGODB_DATABASE", "asistencia"),
		DefaultLocale:         getEnv("DEFAULT_LOCALE", "es"),
		DefaultLatitude:       getEnvFloat("DEFAULT_LATITUDE", -34.603722),
		DefaultLongitude:      getEnvFloat("DEFAULT_LONGITUDE", -58.381592),
		DefaultLocationName:   getEnv("DEFAULT_LOCATION_NAME", "Instituto Superior - Campus Principal"),
		DefaultLocationRadius: getEnvFloat("DEFAULT_LOCATION_RADIUS", 500),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

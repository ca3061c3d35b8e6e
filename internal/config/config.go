package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Realtime configures the managed pub/sub channel and its health probing.
type Realtime struct {
	ManagedEndpoint string
	ManagedAPIKey   string
	ProbeInterval   time.Duration
	ProbeTimeout    time.Duration
	PublishTimeout  time.Duration
}

type Posters struct {
	Bucket string
	Prefix string
	TTL    time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Realtime Realtime
	Posters  Posters
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Realtime: *newRealtime(),
		Posters:  *newPosters(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "test"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newRealtime() *Realtime {
	return &Realtime{
		ManagedEndpoint: getenv("MANAGED_CHANNEL_ENDPOINT", ""),
		ManagedAPIKey:   getenv("MANAGED_CHANNEL_API_KEY", ""),
		ProbeInterval:   getenvDuration("MANAGED_PROBE_INTERVAL", 30*time.Second),
		ProbeTimeout:    getenvDuration("MANAGED_PROBE_TIMEOUT", 5*time.Second),
		PublishTimeout:  getenvDuration("MANAGED_PUBLISH_TIMEOUT", 10*time.Second),
	}
}

func newPosters() *Posters {
	return &Posters{
		Bucket: getenv("POSTER_BUCKET", "reelmatch-posters"),
		Prefix: getenv("POSTER_PREFIX", "poster/"),
		TTL:    getenvDuration("POSTER_LINK_TTL", 24*time.Hour),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		fmt.Printf("%s %s unparsable. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return d
}

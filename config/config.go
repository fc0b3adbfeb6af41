package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Version = "1.0.0"

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string

	RedisHost string
	RedisPort string

	MongoURI string
	MongoDB  string

	KafkaBroker string
	KafkaTopic  string

	EmailUser       string
	EmailPassword   string
	RestaurantEmail string
	SMTPHost        string
	SMTPPort        int

	SessionTTL  time.Duration
	FrontendURL string
	QRBaseURL   string

	NotifyPort   string
	GatewayPort  string
	SiteSvcURL   string
	NotifySvcURL string
	StaticDir    string
}

// Load reads .env.local / .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("NODE_ENV", getEnv("APP_ENV", "development")),
		Port:     getEnv("PORT", "3000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     os.Getenv("DB_NAME"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		MongoURI: os.Getenv("MONGODB_URI"),
		MongoDB:  getEnv("MONGODB_DB", "flavor_heaven"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "restaurant-events"),

		EmailUser:       os.Getenv("EMAIL_USER"),
		EmailPassword:   os.Getenv("EMAIL_PASSWORD"),
		RestaurantEmail: os.Getenv("RESTAURANT_EMAIL"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),

		SessionTTL:  getEnvDuration("SESSION_TTL", 30*24*time.Hour),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		QRBaseURL:   getEnv("QR_BASE_URL", "http://localhost:3000"),

		NotifyPort:   getEnv("NOTIFY_PORT", "3002"),
		GatewayPort:  getEnv("GATEWAY_PORT", "8080"),
		SiteSvcURL:   getEnv("SITE_SVC_URL", "http://localhost:3000"),
		NotifySvcURL: getEnv("NOTIFY_SVC_URL", "http://localhost:3002"),
		StaticDir:    getEnv("STATIC_DIR", "./public"),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// EmailConfigured requires sender credentials and the restaurant inbox.
func (c Config) EmailConfigured() bool {
	return c.EmailUser != "" && c.EmailPassword != "" && c.RestaurantEmail != ""
}

func (c Config) PostgresConfigured() bool { return c.DBHost != "" && c.DBName != "" }
func (c Config) RedisConfigured() bool    { return c.RedisHost != "" }
func (c Config) MongoConfigured() bool    { return c.MongoURI != "" }
func (c Config) KafkaConfigured() bool    { return c.KafkaBroker != "" }

// AllowedOrigins lists the browser origins CORS lets through.
func (c Config) AllowedOrigins() []string {
	if c.IsProduction() {
		origins := []string{"https://*.replit.dev", "https://*.repl.co"}
		if c.FrontendURL != "" {
			origins = append([]string{c.FrontendURL}, origins...)
		}
		return origins
	}
	return []string{
		"http://localhost:5500",
		"http://127.0.0.1:5500",
		"http://localhost:3000",
		"http://localhost:3001",
		"http://localhost:5173",
	}
}

func NewLogger(service string, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Str("env", cfg.AppEnv).
		Logger()

	log.Logger = logger
	return logger
}

func MustInitPostgres(cfg Config) *sql.DB {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	return client
}

func MustInitMongo(ctx context.Context, cfg Config) *mongo.Database {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	return client.Database(cfg.MongoDB)
}

func NewKafkaReader(cfg Config, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   cfg.KafkaTopic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

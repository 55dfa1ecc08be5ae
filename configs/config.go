package configs

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// TaxRate is applied once at order-subtotal level. 0 disables tax.
	TaxRate decimal.Decimal

	// PublicBaseURL is the origin embedded in the table QR URLs.
	PublicBaseURL string

	MidtransServerKey string
	MidtransBaseURL   string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0"))
	if err != nil {
		log.Fatalf("invalid TAX_RATE: %v", err)
	}

	return &Config{
		DBSource:          getEnv("DB_SOURCE", "scandine.db"),
		Port:              getEnv("PORT", "8000"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            time.Duration(24) * time.Hour,
		TaxRate:           taxRate,
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransBaseURL:   getEnv("MIDTRANS_BASE_URL", "https://app.sandbox.midtrans.com"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

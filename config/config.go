package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	MYSQL_DSN    = ""            // MySQL will be used if this is set
	SQLITE_FILE  = "1pic1day.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS = "0.0.0.0:5000"
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	BASE_URL     = "http://localhost:5000"
	SECRET_KEY   = "this is a long key" // session cookie signing key
	DEBUG_MODE   = true

	// Auth0 tenant
	AUTH0_DOMAIN        = ""
	AUTH0_CLIENT_ID     = ""
	AUTH0_CLIENT_SECRET = ""
	AUTH0_CALLBACK_URL  = ""
	API_AUDIENCE        = ""

	// Media storage. "file" keeps uploads on local disk under STORAGE_PATH,
	// "s3" provisions one bucket per album.
	STORAGE_TYPE = "file"
	STORAGE_PATH = "static/uploads"
	S3_KEY       = ""
	S3_SECRET    = ""
	S3_REGION    = "us-east-1"
	S3_ENDPOINT  = "" // leave empty for AWS, set for S3-compatible services

	// How long the featured photo sticks before the next view re-rolls it
	ROTATE_WINDOW_SECONDS = 60
)

func init() {
	// Local development keeps its settings in a .env file
	_ = godotenv.Load()

	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BASE_URL", &BASE_URL)
	readEnvString("SECRET_KEY", &SECRET_KEY)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("AUTH0_DOMAIN", &AUTH0_DOMAIN)
	readEnvString("AUTH0_CLIENT_ID", &AUTH0_CLIENT_ID)
	readEnvString("AUTH0_CLIENT_SECRET", &AUTH0_CLIENT_SECRET)
	readEnvString("AUTH0_CALLBACK_URL", &AUTH0_CALLBACK_URL)
	readEnvString("API_AUDIENCE", &API_AUDIENCE)
	readEnvString("STORAGE_TYPE", &STORAGE_TYPE)
	readEnvString("STORAGE_PATH", &STORAGE_PATH)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvInt("ROTATE_WINDOW_SECONDS", &ROTATE_WINDOW_SECONDS)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}

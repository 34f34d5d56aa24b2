package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret     string
	PortalBaseURL string // external resident portal (login + credential check)
	PushEndpoint  string
	PushAPIKey    string
	UploadBackend string // "oss" | "project"
	UploadBaseDir string
	BaseURL       string
	MongoURI      string
	MongoDatabase string
	PDFRenderURL  string // external invoice renderer

	OSSEndpoint  string
	OSSKeyID     string
	OSSKeySecret string
	OSSBucket    string

	// civil-time zone for overdue / month bucketing (default Asia/Bangkok, +07:00)
	AppLocation *time.Location
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file, using system ENV")
		} else {
			log.Println("✅ .env loaded")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	PortalBaseURL = GetEnv("PORTAL_BASE_URL")
	PushEndpoint = GetEnv("PUSH_ENDPOINT")
	PushAPIKey = GetEnv("PUSH_API_KEY")
	UploadBackend = GetEnv("UPLOAD_BACKEND", "project")
	UploadBaseDir = GetEnv("UPLOAD_BASE_DIR", "./uploads")
	BaseURL = GetEnv("BASE_URL", "http://localhost:3000")
	MongoURI = GetEnv("MONGO_URI")
	MongoDatabase = GetEnv("MONGO_DATABASE", "niti_master")
	PDFRenderURL = GetEnv("PDF_RENDER_URL")

	OSSEndpoint = GetEnv("OSS_ENDPOINT")
	OSSKeyID = GetEnv("OSS_ACCESS_KEY_ID")
	OSSKeySecret = GetEnv("OSS_ACCESS_KEY_SECRET")
	OSSBucket = GetEnv("OSS_BUCKET")

	tz := GetEnv("APP_TIMEZONE", "Asia/Bangkok")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("❌ invalid APP_TIMEZONE %q, falling back to +07:00", tz)
		loc = time.FixedZone("ICT", 7*3600)
	}
	AppLocation = loc

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if PortalBaseURL == "" {
		log.Println("⚠️ PORTAL_BASE_URL is not set, login proxy disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}

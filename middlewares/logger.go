package middlewares

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

var appLogger *log.Logger

// InitLogger sets up rotated file logging alongside stdout.
func InitLogger(logDir string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
		LocalTime:  true,
	}

	out := io.MultiWriter(os.Stdout, logFile)
	appLogger = log.New(out, "", log.LstdFlags)
	log.SetOutput(out)

	return nil
}

func LogInfo(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf("[INFO] "+format, v...)
		return
	}
	log.Printf("[INFO] "+format, v...)
}

func LogError(format string, v ...interface{}) {
	if appLogger != nil {
		appLogger.Printf("[ERROR] "+format, v...)
		return
	}
	log.Printf("[ERROR] "+format, v...)
}

// RequestLogger logs one line per request: method, path, status, latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= 400 {
			LogError("%s %s | status=%d | latency=%v", c.Request.Method, path, status, latency)
		} else {
			LogInfo("%s %s | status=%d | latency=%v", c.Request.Method, path, status, latency)
		}
	}
}

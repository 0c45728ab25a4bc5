package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/tarefa-api/modules/api"
	"github.com/example/tarefa-api/modules/notification"
	"github.com/example/tarefa-api/modules/tarefa"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

// defaultNATSMaxPayload raises the NATS 1 MB default so ObterTodos replies
// carrying the whole table fit in one message. 8 MB is the mono ceiling.
const defaultNATSMaxPayload = 8 * 1024 * 1024

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 3000)
	dbDriver := getEnv("DB_DRIVER", tarefa.DriverSQLite)
	dbDSN := getEnv("DB_DSN", "")
	dbDebug := getEnvBool("DB_DEBUG", false)
	historySize := getEnvInt("NOTIFICATION_HISTORY", notification.DefaultHistorySize)
	shutdownTimeout := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	natsMaxPayload := getEnvInt("NATS_MAX_PAYLOAD", defaultNATSMaxPayload)

	log.Println("=== Tarefa API ===")
	log.Printf("Database driver: %s", dbDriver)
	log.Printf("HTTP Port: %d", httpPort)

	// Create mono application
	app, err := mono.NewMonoApplication(appOptions(shutdownTimeout, natsMaxPayload)...)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: event consumer first, then the core module, then the driving adapter
	app.Register(notification.NewModule(historySize, logger.WithModule("notification")))
	app.Register(tarefa.NewModule(tarefa.DBConfig{
		Driver: dbDriver,
		DSN:    dbDSN,
		Debug:  dbDebug,
	}, logger.WithModule("tarefa")))
	app.Register(api.NewModule(httpPort, logger.WithModule("api")))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// appOptions builds the mono framework options.
func appOptions(shutdownTimeout time.Duration, natsMaxPayload int) []mono.MonoFrameworkOption {
	return []mono.MonoFrameworkOption{
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithNATSMaxPayload(int32(natsMaxPayload)),
	}
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  GET    /Tarefa/{id}                      - Get a tarefa by ID")
	log.Println("  GET    /Tarefa/ObterTodos                - List all tarefas")
	log.Println("  GET    /Tarefa/ObterPorTitulo?titulo=... - Search by title")
	log.Println("  GET    /Tarefa/ObterPorData?data=...     - Search by day")
	log.Println("  GET    /Tarefa/ObterPorStatus?status=... - Search by status")
	log.Println("  POST   /Tarefa                           - Create a tarefa")
	log.Println("  PUT    /Tarefa/{id}                      - Update a tarefa")
	log.Println("  DELETE /Tarefa/{id}                      - Delete a tarefa")
	log.Println("  GET    /health                           - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
)

// Server configuration
func GetPort() string {
	return getEnvWithDefault("PORT", "8080")
}

func GetDataDir() string {
	return getEnvWithDefault("DATA_DIR", "./public/data")
}

// GetDataURL returns an optional HTTP(S) base URL for the dataset files.
// When set it takes precedence over DATA_DIR.
func GetDataURL() string {
	return os.Getenv("DATA_URL")
}

func GetCacheTTLMinutes() int {
	return getEnvAsInt("CACHE_TTL_MINUTES", 60)
}

func GetAllowedOrigins() []string {
	raw := getEnvWithDefault("ALLOWED_ORIGINS",
		"http://localhost:3000,http://localhost:5173,https://policyengine.org")
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// LoadEnv loads environment variables from a .env file if one is present.
func LoadEnv() error {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("BUDGET_ENV"),
	}

	var loadedFile string
	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			loadedFile = path
			break
		}
	}

	if loadedFile == "" {
		return nil // environment-only configuration is fine
	}

	file, err := os.Open(loadedFile)
	if err != nil {
		return err
	}
	defer file.Close()

	log.Printf("Loading environment variables from %s", loadedFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		os.Setenv(key, value)
	}
	return scanner.Err()
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

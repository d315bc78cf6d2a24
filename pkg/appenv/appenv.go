package appenv

import (
	"os"
	"strings"
)

// Env is the application runtime environment, read from APP_ENV.
type Env string

const (
	Production  Env = "production"
	Development Env = "development"
	Test        Env = "test"
)

// Current returns the effective runtime environment. Unknown or empty
// values default to Production so that a missing APP_ENV never relaxes
// CORS or rate limiting.
func Current() Env {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))) {
	case string(Development), "dev":
		return Development
	case string(Test):
		return Test
	default:
		return Production
	}
}

func IsProduction() bool  { return Current() == Production }
func IsDevelopment() bool { return Current() == Development }
func IsTest() bool        { return Current() == Test }

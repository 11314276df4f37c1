// internal/api/activities/config.go
package activities

// Config holds the handler's routing knobs. The struct stays small on
// purpose; everything roster-related lives in the registry.
type Config struct {
	IndexRedirect string
}

func LoadConfig() *Config {
	return &Config{
		IndexRedirect: "/static/index.html",
	}
}

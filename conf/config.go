package conf

/*
   Package conf wraps viper to resolve configuration for the edi834 tools.

   A local.env file is searched for in EDI834_CONF_DIR and then in the known
   shared_files locations. Keys found in the file take precedence; anything the
   file does not define falls through to the process environment. When no file
   is found the process environment is used exclusively.

   The file is read once at startup and treated as immutable, tests excepted.
*/

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

const (
	configgood    uint8 = 0
	configbad     uint8 = 1
	noconfigfound uint8 = 2
)

var (
	envVars *viper.Viper
	state   uint8
)

func init() {
	configure(searchPaths())
}

func searchPaths() []string {
	var paths []string
	if dir, ok := os.LookupEnv("EDI834_CONF_DIR"); ok && dir != "" {
		paths = append(paths, dir)
	}
	return append(paths,
		"/go/src/github.com/CMSgov/edi834-app/shared_files/decrypted",
		"shared_files/decrypted",
	)
}

// configure loads local.env from the first location that has one.
func configure(locations []string) {
	envVars = viper.New()

	dir, found := findEnv(locations)
	if !found {
		state = noconfigfound
		return
	}

	envVars.SetConfigName("local")
	envVars.SetConfigType("env")
	envVars.AddConfigPath(dir)
	if err := envVars.ReadInConfig(); err != nil {
		state = configbad
		return
	}
	state = configgood
}

func findEnv(locations []string) (string, bool) {
	for _, loc := range locations {
		if _, err := os.Stat(filepath.Join(loc, "local.env")); err == nil {
			return loc, true
		}
	}
	return "", false
}

// GetEnv returns the configured value for key, or "" if it is not set anywhere.
func GetEnv(key string) string {
	value, _ := LookupEnv(key)
	return value
}

// LookupEnv behaves like os.LookupEnv but consults local.env first.
func LookupEnv(key string) (string, bool) {
	if state == configgood {
		if value := envVars.GetString(key); value != "" {
			return value, true
		}
	}
	return os.LookupEnv(key)
}

// SetEnv overrides key for the life of the process. The *testing.T parameter marks it
// as intended for tests and package setup only.
func SetEnv(protect *testing.T, key string, value string) error {
	if state == configgood {
		envVars.Set(key, value)
		return nil
	}
	return os.Setenv(key, value)
}

// UnsetEnv clears key in both local.env and the environment. Like SetEnv, it is
// intended for tests.
func UnsetEnv(protect *testing.T, key string) error {
	if state == configgood {
		envVars.Set(key, "")
	}
	return os.Unsetenv(key)
}

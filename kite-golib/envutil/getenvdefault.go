package envutil

import (
	"os"
	"strconv"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

// GetenvDefault gets the value of an environment variable, or returns the
// specified default value if that variable is not set or empty.
func GetenvDefault(name, defaultValue string) string {
	val, found := os.LookupEnv(name)
	if !found || val == "" {
		return defaultValue
	}
	return val
}

// GetenvDefaultInt gets an environment variable as an int, or else returns the default
func GetenvDefaultInt(name string, defaultVal int) (int, error) {
	val, found := os.LookupEnv(name)
	if !found || val == "" {
		return defaultVal, nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, errors.Errorf("environment variable %s should be an integer: %v", name, err)
	}
	return intVal, nil
}

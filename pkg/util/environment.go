package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetPrefixedEnvironmentVariables returns the variables starting with prefix,
// keyed by the remainder of their name
func GetPrefixedEnvironmentVariables(prefix string) map[string]string {
	prefixed := map[string]string{}

	for name, value := range GetEnvironmentVariables() {
		if strings.HasPrefix(name, prefix) && value != "" {
			prefixed[strings.TrimPrefix(name, prefix)] = value
		}
	}

	return prefixed
}

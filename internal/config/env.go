package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are the dotenv file names looked up next to the configuration,
// in order of preference.
var EnvFiles = []string{".env", ".env.local"}

// readEnvFile parses the first dotenv file present in dir. It returns "" and
// a nil map when dir has none. The process environment is left untouched so
// every load sees the file as it is now.
func readEnvFile(dir string) (string, map[string]string, error) {
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		vars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return path, vars, nil
	}
	return "", nil, nil
}

// envLookup resolves a variable from the process environment first and from
// the dotenv values second.
func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
}

package runtime

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads env vars from .env.local and .env, starting in the working
// directory and walking up to the filesystem root. Already-set vars win,
// matching godotenv's behavior. MEW_DOTENV=0 disables loading entirely.
func LoadDotEnv(logPrefix string) {
	if IsDotEnvDisabled() {
		return
	}

	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		for d := cwd; ; {
			paths = append(paths, filepath.Join(d, ".env.local"), filepath.Join(d, ".env"))
			parent := filepath.Dir(d)
			if parent == d {
				break
			}
			d = parent
		}
	} else {
		paths = []string{".env.local", ".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			log.Fatalf("%s failed to load %s: %v", logPrefix, p, err)
		} else {
			log.Printf("%s loaded env from %s", logPrefix, p)
		}
	}
}

func IsDotEnvDisabled() bool {
	v := strings.TrimSpace(os.Getenv("MEW_DOTENV"))
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}

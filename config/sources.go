package config

import (
	"os"

	"github.com/joho/godotenv"
)

// FileSystem is the file access LoadConfig needs. Tests swap it out.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// OSFileSystem reads from the real file system.
type OSFileSystem struct{}

// Exists reports whether path is a regular file.
func (OSFileSystem) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// LoadEnv adds the variables in a dotenv file to the process environment.
// Variables that are already set keep their value.
func (OSFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Sources names the files a configuration is read from. Empty means none.
type Sources struct {
	ConfigFile string
	EnvFile    string
}

// Resolve fills the empty entries of explicit with the first file found
// in the standard locations for serviceName.
func Resolve(fsys FileSystem, serviceName string, explicit Sources) Sources {
	src := explicit
	if src.ConfigFile == "" {
		src.ConfigFile = firstExisting(fsys,
			"./cmd/"+serviceName+"/config.yml",
			"../cmd/"+serviceName+"/config.yml",
			"../../cmd/"+serviceName+"/config.yml",
			"./config/config.yml",
			"./config.yml",
		)
	}
	if src.EnvFile == "" {
		src.EnvFile = firstExisting(fsys,
			"./cmd/"+serviceName+"/.env",
			".env."+serviceName,
			".env",
		)
	}
	return src
}

func firstExisting(fsys FileSystem, paths ...string) string {
	for _, p := range paths {
		if fsys.Exists(p) {
			return p
		}
	}
	return ""
}

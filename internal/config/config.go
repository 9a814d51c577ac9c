// Package config provides configuration loading.
//
// Values are layered: defaults, then CHATBUF_* environment variables, then
// the TOML config file, then the environment again so it always wins. A
// .env file in the working directory seeds the environment without
// overriding variables that are already set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/chatbuf/internal/colors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// FileModeDir is the permission for directories chatbuf creates.
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for files chatbuf writes.
	FileModeFile os.FileMode = 0644

	// EnvPrefix prefixes every environment override, e.g. CHATBUF_NICK.
	EnvPrefix = "CHATBUF_"

	configFileName = "config.toml"
	sampleHeader   = "# chatbuf configuration\n# Every key can also be set as CHATBUF_<KEY> in the environment.\n\n"
)

var (
	mu       sync.RWMutex
	config   map[string]string
	defaults map[string]string

	dotenvPath = ".env"
)

// Load (re)reads the configuration.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	setDefaults()
	loadDotenv()
	loadFromEnv()
	loadFromFile()
	loadFromEnv()
	validate()
	computeDirs()
	writeSampleConfig()
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	configHome := xdgDir("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	stateHome := xdgDir("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	config = make(map[string]string, len(options))
	defaults = make(map[string]string, len(options))
	for _, o := range options {
		defaults[o.key] = o.value
	}
	defaults["config_dir"] = filepath.Join(configHome, "chatbuf")
	defaults["state_dir"] = filepath.Join(stateHome, "chatbuf")
	defaults["nick"] = defaultNick()
	for k, v := range defaults {
		config[k] = v
	}
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	return fallback
}

// defaultNick derives a nick from the login name.
func defaultNick() string {
	for _, env := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return "guest"
}

func loadDotenv() {
	if dotenvPath == "" {
		return
	}
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		colors.Debug(fmt.Sprintf("unable to load %s: %v", dotenvPath, err))
	}
}

// configPath returns CHATBUF_CONFIG_PATH, or config_dir/config.toml when it exists.
func configPath() string {
	if p := os.Getenv(EnvPrefix + "CONFIG_PATH"); p != "" {
		return p
	}
	p := filepath.Join(config["config_dir"], configFileName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func loadFromFile() {
	path := configPath()
	if path == "" || !strings.EqualFold(filepath.Ext(path), ".toml") {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", path, err))
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", path, err))
		return
	}
	for k, v := range raw {
		key := strings.ToLower(k)
		s, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		config[key] = s
	}
}

// coerceConfigValue flattens a decoded TOML value to a string. Arrays of
// scalars, such as servers = ["Libera", "OFTC"], are joined with commas.
func coerceConfigValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			s, ok := coerceConfigValue(item)
			if !ok {
				return "", false
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

func loadFromEnv() {
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if key == "config_path" {
			continue
		}
		config[key] = value
	}
}

// computeDirs fills in paths derived from state_dir and config_dir unless
// they were set explicitly.
func computeDirs() {
	if config["db_path"] == "" {
		config["db_path"] = filepath.Join(config["state_dir"], "chatbuf.db")
	}
	if config["hooks_dir"] == "" {
		config["hooks_dir"] = filepath.Join(config["config_dir"], "hooks")
	}
}

// writeSampleConfig documents every option in config_dir/config.toml the
// first time chatbuf runs.
func writeSampleConfig() {
	dir := config["config_dir"]
	if dir == "" {
		return
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		colors.Debug(fmt.Sprintf("unable to create config dir %s: %v", dir, err))
		return
	}

	var buf bytes.Buffer
	buf.WriteString(sampleHeader)
	for _, o := range options {
		if o.doc == "" {
			continue
		}
		line, err := toml.Marshal(map[string]interface{}{o.key: typedValue(defaults[o.key])})
		if err != nil {
			colors.Warning(fmt.Sprintf("unable to marshal sample value for %s: %v", o.key, err))
			return
		}
		fmt.Fprintf(&buf, "# %s\n%s\n", o.doc, line)
	}
	if err := os.WriteFile(path, buf.Bytes(), FileModeFile); err != nil {
		colors.Warning(fmt.Sprintf("unable to write sample config to %s: %v", path, err))
	}
}

// typedValue turns a default back into the TOML type a user would write.
func typedValue(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// Get returns a configuration value or def.
func Get(key, def string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v, ok := config[key]; ok {
		return v
	}
	return def
}

// GetInt returns a configuration value as an integer, or def.
func GetInt(key string, def int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return def
	}
	return n
}

// GetBool returns a configuration value as a boolean, or def.
func GetBool(key string, def bool) bool {
	b, ok := parseBool(Get(key, ""))
	if !ok {
		return def
	}
	return b
}

// GetList returns a comma separated value as a slice with blank entries
// removed. A missing key yields nil.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(Get(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set overrides a value for the rest of the process, e.g. from a flag.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	if config == nil {
		config = make(map[string]string)
	}
	config[key] = value
}

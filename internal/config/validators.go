package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/chatbuf/internal/colors"
)

// Validator normalizes raw. It returns an error when raw is unusable and
// the default should be kept instead.
type Validator func(raw string) (string, error)

// option describes one configuration key. Options with an empty doc are
// derived at load time and left out of the sample file.
type option struct {
	key      string
	value    string
	doc      string
	validate Validator
}

// options lists every known key in the order the sample file shows them.
// Path defaults are filled in by setDefaults and computeDirs.
var options = []option{
	{key: "config_dir"},
	{key: "state_dir"},
	{key: "db_path"},
	{key: "hooks_dir"},
	{key: "tui_settings_path"},
	{key: "nick", doc: "Nick used for new servers and local messages."},
	{key: "servers", doc: "Servers created when sample_data is off, e.g. \"Libera,OFTC\"."},
	{key: "sample_data", value: "true", doc: "Start from the sample Libera/OFTC state when nothing is saved.", validate: boolean},
	{key: "scrollback_limit", value: "1000", doc: "Lines kept per buffer.", validate: positiveInt},
	{key: "snapshot_keep", value: "20", doc: "Saved revisions kept after each save.", validate: positiveInt},
	{key: "output_format", value: "color", doc: "CLI output: plain, color or json.", validate: oneOf("plain", "color", "json")},
	{key: "status_format", value: "compact", doc: "Preset name or ${var} template for `chatbuf status`."},
	{key: "search_mode", value: "substring", doc: "Line search: substring, regex or token.", validate: oneOf("substring", "regex", "token")},
	{key: "hooks_enabled", value: "true", doc: "Run executable scripts from hooks_dir/<point>.d.", validate: boolean},
	{key: "hooks_failure_mode", value: "warn", doc: "On hook failure: abort, warn or ignore.", validate: oneOf("abort", "warn", "ignore")},
	{key: "hooks_async", value: "false", doc: "Run hooks in the background.", validate: boolean},
	{key: "hooks_async_timeout", value: "30", doc: "Seconds before a background hook is killed.", validate: positiveInt},
	{key: "hooks_max_async", value: "10", doc: "Background hooks allowed at once.", validate: positiveInt},
	{key: "debug", value: "false", doc: "Verbose console output.", validate: boolean},
	{key: "quiet", value: "false", doc: "Only print errors on the console; debug overrides it.", validate: boolean},
	{key: "logging_enabled", value: "false", doc: "Write JSON logs under state_dir/logs.", validate: boolean},
	{key: "logging_level", value: "info", doc: "debug, info, warn or error.", validate: oneOf("debug", "info", "warn", "error")},
	{key: "logging_max_files", value: "10", doc: "Log files kept by rotation.", validate: positiveInt},
}

func lookupOption(key string) (option, bool) {
	for _, o := range options {
		if o.key == key {
			return o, true
		}
	}
	return option{}, false
}

func positiveInt(raw string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return "", fmt.Errorf("must be a positive integer")
	}
	return strconv.Itoa(n), nil
}

func oneOf(allowed ...string) Validator {
	return func(raw string) (string, error) {
		v := strings.ToLower(strings.TrimSpace(raw))
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		return "", fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}

func boolean(raw string) (string, error) {
	b, ok := parseBool(raw)
	if !ok {
		return "", fmt.Errorf("must be one of: 1, true, yes, on, 0, false, no, off")
	}
	return strconv.FormatBool(b), nil
}

func parseBool(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// validate replaces every invalid value with its default. Empty values
// also fall back to the default.
func validate() {
	for key, value := range config {
		o, ok := lookupOption(key)
		if !ok || o.validate == nil {
			continue
		}
		def := defaults[key]
		if value == "" {
			config[key] = def
			continue
		}
		normalized, err := o.validate(value)
		if err != nil {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': %v; using default: %s", key, value, err, def))
			config[key] = def
			continue
		}
		config[key] = normalized
	}
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/mindmap-tui/internal/app"
	"github.com/atomicstack/mindmap-tui/internal/store"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
}

// fileConfig mirrors the optional YAML configuration file. Every field is a
// pointer so absent keys leave the built-in default alone.
type fileConfig struct {
	Store    *string `yaml:"store"`
	Path     *string `yaml:"path"`
	Key      *string `yaml:"key"`
	Width    *int    `yaml:"width"`
	Height   *int    `yaml:"height"`
	Footer   *bool   `yaml:"footer"`
	Watch    *bool   `yaml:"watch"`
	Debounce *string `yaml:"debounce"`
	Trace    *bool   `yaml:"trace"`
	Verbose  *bool   `yaml:"verbose"`
	LogFile  *string `yaml:"log_file"`
	Export   *string `yaml:"export"`
}

const (
	envConfig   = "MINDMAP_CONFIG"
	envStore    = "MINDMAP_STORE"
	envPath     = "MINDMAP_PATH"
	envKey      = "MINDMAP_KEY"
	envWidth    = "MINDMAP_WIDTH"
	envHeight   = "MINDMAP_HEIGHT"
	envFooter   = "MINDMAP_FOOTER"
	envWatch    = "MINDMAP_WATCH"
	envDebounce = "MINDMAP_DEBOUNCE"
	envVerbose  = "MINDMAP_VERBOSE"
	envTrace    = "MINDMAP_TRACE"
	envLogFile  = "MINDMAP_LOG_FILE"
	envExport   = "MINDMAP_EXPORT"

	defaultKey      = "mindmap"
	defaultDebounce = 250 * time.Millisecond
	sqliteFileName  = "mindmap.db"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flags, then environment, then the YAML file, then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath := scanConfigFlag(args, envOrDefault(env, envConfig, ""))
	file, err := readFile(configPath)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("mindmap", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a YAML configuration file")
	kind := fs.String("store", envOrDefault(env, envStore, strOr(file.Store, string(store.KindFile))), "storage backend: file, sqlite or memory")
	path := fs.String("path", envOrDefault(env, envPath, strOr(file.Path, "")), "store location (directory for file, database for sqlite)")
	key := fs.String("key", envOrDefault(env, envKey, strOr(file.Key, defaultKey)), "key the outline is saved under")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envFooter, boolOr(file.Footer, true)), "show the key help footer")
	watch := fs.Bool("watch", envOrBool(env, envWatch, boolOr(file.Watch, true)), "watch the store for changes made by other processes")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, durationOr(file.Debounce, defaultDebounce)), "coalesce store change notifications within this interval")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, boolOr(file.Verbose, false)), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, strOr(file.LogFile, "")), "path to the log file")
	export := fs.String("export", envOrDefault(env, envExport, strOr(file.Export, "")), "markdown export destination (defaults to <key>.md)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	storeKind, err := store.ParseKind(*kind)
	if err != nil {
		return Config{}, err
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	storePath := strings.TrimSpace(*path)
	if storePath == "" {
		storePath = defaultStorePath(env, storeKind)
	}

	cfg := Config{
		App: app.Config{
			StoreKind:  storeKind,
			StorePath:  storePath,
			Key:        strings.TrimSpace(*key),
			Width:      *width,
			Height:     *height,
			ShowFooter: *footer,
			Verbose:    *verbose,
			Watch:      *watch,
			Debounce:   *debounce,
			ExportPath: strings.TrimSpace(*export),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
			Watch:   *watch,
		},
		File: configPath,
		Flags: map[string]string{
			"config":   configPath,
			"store":    string(storeKind),
			"path":     storePath,
			"key":      *key,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"footer":   strconv.FormatBool(*footer),
			"watch":    strconv.FormatBool(*watch),
			"debounce": debounce.String(),
			"trace":    strconv.FormatBool(*trace),
			"verbose":  strconv.FormatBool(*verbose),
			"logFile":  *logFile,
			"export":   *export,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanConfigFlag finds -config before the full flag set exists, since the
// file supplies that set's defaults.
func scanConfigFlag(args []string, fallback string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return fallback
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	if strings.TrimSpace(path) == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, fmt.Errorf("config file %s does not exist", path)
		}
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func defaultStorePath(env map[string]string, kind store.Kind) string {
	base := strings.TrimSpace(env["XDG_DATA_HOME"])
	if base == "" {
		if home := strings.TrimSpace(env["HOME"]); home != "" {
			base = filepath.Join(home, ".local", "share")
		} else {
			base = "."
		}
	}
	dir := filepath.Join(base, "mindmap")
	if kind == store.KindSQLite {
		return filepath.Join(dir, sqliteFileName)
	}
	return dir
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func strOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func durationOr(v *string, fallback time.Duration) time.Duration {
	if v == nil {
		return fallback
	}
	parsed, err := time.ParseDuration(*v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Key == "" {
		return errors.New("key must not be empty")
	}
	if strings.ContainsAny(cfg.App.Key, `/\`) {
		return fmt.Errorf("key %q must not contain path separators", cfg.App.Key)
	}
	if cfg.App.StoreKind != store.KindMemory && strings.TrimSpace(cfg.App.StorePath) == "" {
		return errors.New("store path must not be empty")
	}
	if cfg.App.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", cfg.App.Debounce)
	}
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-git/go-billy/v5"
	"github.com/joho/godotenv"
	"github.com/jvitoroc/gocalc/expr"
	"gopkg.in/yaml.v3"
)

type RunMode string

const (
	ModeInteractive RunMode = "interactive"
	ModeDemo        RunMode = "demo"
	ModeFile        RunMode = "file"
	ModeServe       RunMode = "serve"
	ModeHistory     RunMode = "history"
)

var runModes = []RunMode{ModeInteractive, ModeDemo, ModeFile, ModeServe, ModeHistory}

type Config struct {
	Mode            RunMode   `yaml:"mode"`
	Parser          expr.Mode `yaml:"parser"`
	StrictLessEqual bool      `yaml:"strict_less_equal"`
	Debug           bool      `yaml:"debug"`
	File            string    `yaml:"file"`
	History         string    `yaml:"history"`
	Port            string    `yaml:"port"`
}

func defaultConfig() *Config {
	return &Config{
		Mode:   ModeInteractive,
		Parser: expr.ModeCompat,
		Port:   "8080",
	}
}

func (c *Config) Validate() error {
	valid := false
	for _, m := range runModes {
		if c.Mode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown mode '%s'", c.Mode)
	}

	if !c.Parser.Valid() {
		return fmt.Errorf("unknown parser '%s', expected '%s' or '%s'", c.Parser, expr.ModeCompat, expr.ModeStandard)
	}

	if c.Mode == ModeFile && c.File == "" {
		return errors.New("file mode needs a script file")
	}

	if c.Mode == ModeHistory && c.History == "" {
		return errors.New("history mode needs a history file")
	}

	if c.Mode == ModeServe {
		if err := validatePort(c.Port); err != nil {
			return fmt.Errorf("invalid port: %w", err)
		}
	}

	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}

// loadDotEnv loads variables from the .env file named by ENV_PATH, or
// from ".env" in the working directory. A missing file is not an error.
func loadDotEnv() {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}

	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Skipping .env ...", "path", envPath, "error", err)
	}
}

// loadConfig layers, from lowest to highest priority: defaults, the YAML
// file named by -config or GOCALC_CONFIG, GOCALC_* environment variables
// and the remaining command line flags.
func loadConfig(fs billy.Filesystem, args []string, getenv func(string) string) (*Config, error) {
	fset := flag.NewFlagSet("gocalc", flag.ContinueOnError)

	var (
		configPath = fset.String("config", getenv("GOCALC_CONFIG"), "YAML configuration file")
		mode       = fset.String("mode", "", "run mode: interactive, demo, file, serve or history")
		parser     = fset.String("parser", "", "parser: compat or standard")
		strictLte  = fset.Bool("strict-lte", false, "evaluate <= as less-or-equal instead of greater-or-equal")
		debug      = fset.Bool("debug", false, "trace tokens and trees")
		file       = fset.String("file", "", "script file evaluated in file mode")
		hist       = fset.String("history", "", "file recording every evaluated line")
		port       = fset.String("port", "", "port served in serve mode")
	)

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	if *configPath != "" {
		if err := loadConfigFile(fs, *configPath, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, getenv); err != nil {
		return nil, err
	}

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = RunMode(*mode)
		case "parser":
			cfg.Parser = expr.Mode(*parser)
		case "strict-lte":
			cfg.StrictLessEqual = *strictLte
		case "debug":
			cfg.Debug = *debug
		case "file":
			cfg.File = *file
		case "history":
			cfg.History = *hist
		case "port":
			cfg.Port = *port
		}
	})

	// a single positional argument is a script file
	if fset.NArg() == 1 && cfg.File == "" {
		cfg.File = fset.Arg(0)
		if !isSet(fset, "mode") {
			cfg.Mode = ModeFile
		}
	} else if fset.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one script file, got %d arguments", fset.NArg())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isSet(fset *flag.FlagSet, name string) bool {
	set := false
	fset.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}

func loadConfigFile(fs billy.Filesystem, name string, cfg *Config) error {
	f, err := fs.Open(name)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding config %s: %w", name, err)
	}

	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("GOCALC_MODE"); v != "" {
		cfg.Mode = RunMode(v)
	}

	if v := getenv("GOCALC_PARSER"); v != "" {
		cfg.Parser = expr.Mode(v)
	}

	for name, dst := range map[string]*bool{
		"GOCALC_DEBUG":      &cfg.Debug,
		"GOCALC_STRICT_LTE": &cfg.StrictLessEqual,
	} {
		v := getenv(name)
		if v == "" {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}

	if v := getenv("GOCALC_FILE"); v != "" {
		cfg.File = v
	}

	if v := getenv("GOCALC_HISTORY"); v != "" {
		cfg.History = v
	}

	if v := getenv("GOCALC_PORT"); v != "" {
		cfg.Port = v
	}

	return nil
}

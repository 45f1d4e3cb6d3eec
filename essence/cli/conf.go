package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/essence"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// defaults are loaded before any configuration file or flag.
var defaults = map[string]interface{}{
	"format":   "text",
	"validate": true,
	"color":    true,
	"tokens":   false,
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	konf := koanfadapter.New(k, "ESSENCE", []string{"nt"})
	konf.InitDefaults()
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		tracing.Errorf(err.Error())
		essence.Exit(1)
	}
	if err := mergeConfigFile(k, configFileName()); err != nil {
		tracing.Errorf(err.Error())
		essence.Exit(1)
	}
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		essence.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		essence.Exit(1)
	}
	essence.Configuration = k // push the configuration to app-global scope
}

// configFileName is the --config flag, or the default configuration file in
// the application's configuration directory.
func configFileName() string {
	if name, err := rootCmd.PersistentFlags().GetString("config"); err == nil && name != "" {
		return name
	}
	return defaultConfigFile(locateLogFile())
}

// mergeConfigFile loads a TOML configuration file into k. An empty name is
// not an error.
func mergeConfigFile(k *koanf.Koanf, name string) error {
	if name == "" {
		return nil
	}
	var values map[string]interface{}
	if _, err := toml.DecodeFile(name, &values); err != nil {
		return fmt.Errorf("cannot read configuration %s: %w", name, err)
	}
	tracer().Infof("loaded configuration from %s", name)
	return k.Load(confmap.Provider(values, "."), nil)
}

func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
	if err != nil {
		return err
	}
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return err
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	paths := locateLogFile()
	if dest := konf.GetString("tracing.destination"); dest != "" {
		if !strings.Contains(dest, ":") && paths.ConfigDir() != "" {
			dest = "file://" + paths.ConfigDir() + "/" + dest
			konf.Set("tracing.destination", dest)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof(rootCmd.Long)
	return nil
}

func locateLogFile() AppPaths {
	paths, err := DefaultAppPaths("ESSENCE")
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}

// configString and configBool read the global configuration, falling back
// to defaults if it has not been loaded.
func configString(key string) string {
	if essence.Configuration == nil {
		s, _ := defaults[key].(string)
		return s
	}
	return essence.Configuration.String(key)
}

func configBool(key string) bool {
	if essence.Configuration == nil {
		b, _ := defaults[key].(bool)
		return b
	}
	return essence.Configuration.Bool(key)
}

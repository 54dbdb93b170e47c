package gravnav

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _gnconfig{}
)

// _gnconfig is a "hidden" struct, just use `GravNavConfig`
type _gnconfig struct {
	GM, Dt                    float64
	MaxSteps, Ships           int
	OutputDir                 string
	TargetRadius, ApsisWindow float64
	Form                      string
	ServerURL, ClientName     string
	JoinMode                  string
	RecordPath                string
	MetricsAddr               string
}

// GravNavConfig returns the configuration, loading it on first use. Without a
// GRAVNAV_CONFIG directory the defaults below stand; with one, conf.toml must be
// present and parse.
func GravNavConfig() _gnconfig {
	if cfgLoaded {
		return config
	}
	viper.SetDefault("general.gm", 1.0)
	viper.SetDefault("general.dt", 1.0/60)
	viper.SetDefault("general.max_steps", 1000)
	viper.SetDefault("general.output_path", "./")
	viper.SetDefault("guidance.target_radius", 1.0)
	viper.SetDefault("guidance.apsis_window", 0.1)
	viper.SetDefault("guidance.form", "actuator")
	viper.SetDefault("server.url", "ws://localhost:8765")
	viper.SetDefault("server.name", "gravnav")
	viper.SetDefault("server.mode", ModeManual)
	viper.SetDefault("fleet.ships", 4)
	viper.SetDefault("record.path", "episodes.db")
	viper.SetDefault("metrics.addr", ":9090")

	if confPath := os.Getenv("GRAVNAV_CONFIG"); confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("%s/conf.toml not found", confPath))
		}
	}

	config = _gnconfig{
		GM:           viper.GetFloat64("general.gm"),
		Dt:           viper.GetFloat64("general.dt"),
		MaxSteps:     viper.GetInt("general.max_steps"),
		OutputDir:    viper.GetString("general.output_path"),
		TargetRadius: viper.GetFloat64("guidance.target_radius"),
		ApsisWindow:  viper.GetFloat64("guidance.apsis_window"),
		Form:         viper.GetString("guidance.form"),
		ServerURL:    viper.GetString("server.url"),
		ClientName:   viper.GetString("server.name"),
		JoinMode:     viper.GetString("server.mode"),
		Ships:        viper.GetInt("fleet.ships"),
		RecordPath:   viper.GetString("record.path"),
		MetricsAddr:  viper.GetString("metrics.addr"),
	}
	cfgLoaded = true
	return config
}

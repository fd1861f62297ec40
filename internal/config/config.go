package config

import (
	"strings"

	"github.com/benbeisheim/powerchess-backend/internal/model"
	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr      string  `mapstructure:"SERVER_ADDR"`
	AllowedOrigins  string  `mapstructure:"ALLOWED_ORIGINS"`
	LogLevel        string  `mapstructure:"LOG_LEVEL"`
	SpawnChance     float64 `mapstructure:"SPAWN_CHANCE"`
	MaxPowerObjects int     `mapstructure:"MAX_POWER_OBJECTS"`
	WeightCommon    int     `mapstructure:"WEIGHT_COMMON"`
	WeightRare      int     `mapstructure:"WEIGHT_RARE"`
	WeightLegendary int     `mapstructure:"WEIGHT_LEGENDARY"`
	ShieldTurns     int     `mapstructure:"SHIELD_TURNS"`
	BlackHoleTurns  int     `mapstructure:"BLACK_HOLE_TURNS"`
	ArmageddonTurns int     `mapstructure:"ARMAGEDDON_TURNS"`
}

func setDefaults(v *viper.Viper) {
	d := model.DefaultSettings()
	v.SetDefault("SERVER_ADDR", ":3000")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SPAWN_CHANCE", d.SpawnChance)
	v.SetDefault("MAX_POWER_OBJECTS", d.MaxPowerObjects)
	v.SetDefault("WEIGHT_COMMON", d.RarityWeights[model.Common])
	v.SetDefault("WEIGHT_RARE", d.RarityWeights[model.Rare])
	v.SetDefault("WEIGHT_LEGENDARY", d.RarityWeights[model.Legendary])
	v.SetDefault("SHIELD_TURNS", d.ShieldTurns)
	v.SetDefault("BLACK_HOLE_TURNS", d.BlackHoleTurns)
	v.SetDefault("ARMAGEDDON_TURNS", d.ArmageddonTurns)
}

// Setup reads cfgPath when given, then lets environment variables override
// any key.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits the comma separated origin list.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) GameSettings() model.Settings {
	return model.Settings{
		SpawnChance:     c.SpawnChance,
		MaxPowerObjects: c.MaxPowerObjects,
		RarityWeights:   [3]int{c.WeightCommon, c.WeightRare, c.WeightLegendary},
		ShieldTurns:     c.ShieldTurns,
		BlackHoleTurns:  c.BlackHoleTurns,
		ArmageddonTurns: c.ArmageddonTurns,
	}
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	} `mapstructure:"smtp"`

	// Optional admin channel; disabled when the token is empty.
	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Sim struct {
		// Wall-clock cadence of the tick; independent of the 30-day
		// simulated step.
		TickInterval time.Duration `mapstructure:"tick_interval"`
	} `mapstructure:"sim"`
}

func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Sim.TickInterval <= 0 {
		c.Sim.TickInterval = time.Minute
	}
	return c, nil
}

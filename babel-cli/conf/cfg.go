package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kernel-community/nfteasy/babel-api/chainio/types"
)

const EnvPrefix = "BABEL"

var C *Conf

// InitConfig loads $BABEL_CONFIG, or ~/.config/babel/config.toml which is
// created with defaults on first use.
func InitConfig() {
	configPath := os.Getenv(EnvPrefix + "_CONFIG")
	if configPath == "" {
		configPath = checkConfig()
	}
	c, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	C = c
}

// Load reads a TOML config file. Every key can be overridden from the
// environment as BABEL_<SECTION>_<KEY>, e.g. BABEL_CONTRACT_BABEL or
// BABEL_MINT_TO.
func Load(configPath string) (*Conf, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(content)); err != nil {
		return nil, fmt.Errorf("invalid default config: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config file invalid: %w", err)
	}
	return &c, nil
}

// TxManagerParams converts the [tx] section for chain IO.
func (c *Conf) TxManagerParams() types.TxManagerParams {
	params := types.DefaultTxManagerParams()
	if c.Tx.MaxRetries > 0 {
		params.MaxRetries = c.Tx.MaxRetries
	}
	if c.Tx.RetryInterval > 0 {
		params.RetryInterval = c.Tx.RetryInterval
	}
	if c.Tx.ConfirmationTimeout > 0 {
		params.ConfirmationTimeout = c.Tx.ConfirmationTimeout
	}
	if c.Tx.GasFeeCapRate > 0 {
		params.ETHGasFeeCapAdjustmentRate = c.Tx.GasFeeCapRate
	}
	if c.Tx.GasLimitRate > 0 {
		params.ETHGasLimitAdjustmentRate = c.Tx.GasLimitRate
	}
	if c.Tx.GasLimit > 0 {
		params.GasLimit = c.Tx.GasLimit
	}
	return params
}

func checkConfig() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("Error getting home directory: %s\n", err))
	}
	configDir := filepath.Join(home, ".config", "babel")
	configFile := filepath.Join(configDir, "config.toml")

	if err := os.MkdirAll(configDir, os.ModePerm); err != nil {
		panic(fmt.Sprintf("Error creating directory: %s\n", err))
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		config := strings.Replace(content, "{keyDir}", filepath.Join(home, ".babel", "keystore"), 1)
		if err := os.WriteFile(configFile, []byte(config), 0600); err != nil {
			panic(fmt.Sprintf("Error writing config file: %s\n", err))
		}
	}
	return configFile
}

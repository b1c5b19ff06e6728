package conf

import "time"

type Conf struct {
	LogLevel string   `mapstructure:"logLevel"`
	Logstash string   `mapstructure:"logstash"`
	Account  Account  `mapstructure:"account"`
	Chain    Chain    `mapstructure:"chain"`
	Contract Contract `mapstructure:"contract"`
	Mint     Mint     `mapstructure:"mint"`
	Signing  Signing  `mapstructure:"signing"`
	Tx       Tx       `mapstructure:"tx"`
	Server   Server   `mapstructure:"server"`
	Kafka    Kafka    `mapstructure:"kafka"`
}

type Account struct {
	EVMKeyDir string `mapstructure:"evmKeyDir"`
}

type Chain struct {
	Name   string `mapstructure:"name"`
	EVMRPC string `mapstructure:"evmRPC"`
}

type Contract struct {
	ABIDir          string `mapstructure:"abiDir"`
	Babel           string `mapstructure:"babel"`
	BabelAuthMint   string `mapstructure:"babelAuthMint"`
	BabelMerkleMint string `mapstructure:"babelMerkleMint"`
	ProxyRegistry   string `mapstructure:"proxyRegistry"`
}

type Mint struct {
	To string `mapstructure:"to"`
}

type Signing struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type Tx struct {
	MaxRetries          int           `mapstructure:"maxRetries"`
	RetryInterval       time.Duration `mapstructure:"retryInterval"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmationTimeout"`
	GasFeeCapRate       int64         `mapstructure:"gasFeeCapRate"`
	GasLimitRate        float64       `mapstructure:"gasLimitRate"`
	GasLimit            uint64        `mapstructure:"gasLimit"`
}

type Server struct {
	Addr          string `mapstructure:"addr"`
	RedisAddr     string `mapstructure:"redisAddr"`
	RedisPassword string `mapstructure:"redisPassword"`
	RedisDB       int    `mapstructure:"redisDB"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

var content = `
logLevel = "info"
logstash = "" # host:port, empty disables shipping

[account]
evmKeyDir = "{keyDir}"

[chain]
name = "localhost"
evmRPC = "http://127.0.0.1:8545"

[contract]
abiDir = "" # empty uses the built-in ABIs
babel = ""
babelAuthMint = ""
babelMerkleMint = ""
proxyRegistry = "0xf57b2c51ded3a29e6891aba85459d600256cf317"

[mint]
to = ""

[signing]
name = "Babel"
version = "1.0.0"

[tx]
maxRetries = 3
retryInterval = "2s"
confirmationTimeout = "60s"
gasFeeCapRate = 2
gasLimitRate = 1.2
gasLimit = 10000000

[server]
addr = "127.0.0.1:8080"
redisAddr = "" # empty keeps issued claims in memory
redisPassword = ""
redisDB = 0

[kafka]
brokers = [] # e.g. ["localhost:9092"], empty disables publishing
topic = "babel-events"
`

package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации шлюза.
// Секреты (ключ оператора, JWT-секрет, пароль БД) читаются только из окружения.

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Chain     ChainConfig     `yaml:"chain"`
	Redis     RedisConfig     `yaml:"redis"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	// Backend выбирает хранилище пользователей: "mongo" (по умолчанию) или "mariadb"
	Backend string      `yaml:"backend"`
	Mongo   MongoConfig `yaml:"mongo"`
	Maria   MariaConfig `yaml:"maria"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type MariaConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
}

type ChainConfig struct {
	RPCURL           string `yaml:"rpc_url"`
	GameAddress      string `yaml:"game_address"`
	HouseAddress     string `yaml:"house_address"`
	ValidatorAddress string `yaml:"validator_address"`
	SettingAddress   string `yaml:"setting_address"`
	HelperAddress    string `yaml:"helper_address"`
	GasLimit         uint64 `yaml:"gas_limit"`
	Precision        int64  `yaml:"precision"`
	CallTimeoutSec   int    `yaml:"call_timeout_seconds"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"` // пусто — ревокация токенов отключена
	DB   int    `yaml:"db"`
}

type EventBusConfig struct {
	URL string `yaml:"url"` // пусто — публикация событий отключена
}

type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GetPort возвращает порт HTTP-сервера с приоритетом: config -> env -> default
func (s *ServerConfig) GetPort() int {
	return getIntWithEnvFallback(s.Port, "PORT", 3001)
}

// GetRPCURL возвращает адрес узла с приоритетом: config -> env -> default
func (c *ChainConfig) GetRPCURL() string {
	return getStringWithEnvFallback(c.RPCURL, "CHAIN_RPC_URL", "http://localhost:8545")
}

// GetGameAddress возвращает адрес игрового контракта
func (c *ChainConfig) GetGameAddress() string {
	return getStringWithEnvFallback(c.GameAddress, "GAME_ADDRESS", "")
}

// GetHouseAddress возвращает адрес контракта NFT домов
func (c *ChainConfig) GetHouseAddress() string {
	return getStringWithEnvFallback(c.HouseAddress, "HOUSE_ADDRESS", "")
}

// GetValidatorAddress возвращает адрес контракта валидатора
func (c *ChainConfig) GetValidatorAddress() string {
	return getStringWithEnvFallback(c.ValidatorAddress, "VALIDATOR_ADDRESS", "")
}

// GetSettingAddress возвращает адрес контракта настроек игры
func (c *ChainConfig) GetSettingAddress() string {
	return getStringWithEnvFallback(c.SettingAddress, "SETTING_ADDRESS", "")
}

// GetHelperAddress возвращает адрес вспомогательного контракта
func (c *ChainConfig) GetHelperAddress() string {
	return getStringWithEnvFallback(c.HelperAddress, "HELPER_ADDRESS", "")
}

// GetGasLimit возвращает лимит газа на транзакцию, env GAS как в исходной конфигурации
func (c *ChainConfig) GetGasLimit() uint64 {
	if c.GasLimit > 0 {
		return c.GasLimit
	}
	if envVal := os.Getenv("GAS"); envVal != "" {
		if gas, err := strconv.ParseUint(envVal, 10, 64); err == nil && gas > 0 {
			return gas
		}
	}
	return 3000000
}

// GetPrecision возвращает масштабирующую константу процентов прочности (env PRECISION)
func (c *ChainConfig) GetPrecision() int64 {
	if c.Precision > 0 {
		return c.Precision
	}
	if envVal := os.Getenv("PRECISION"); envVal != "" {
		if p, err := strconv.ParseInt(envVal, 10, 64); err == nil && p > 0 {
			return p
		}
	}
	return 100
}

// GetCallTimeout возвращает таймаут одного обращения к узлу
func (c *ChainConfig) GetCallTimeout() time.Duration {
	sec := getIntWithEnvFallback(c.CallTimeoutSec, "CHAIN_CALL_TIMEOUT", 30)
	return time.Duration(sec) * time.Second
}

// OperatorKey возвращает приватный ключ оператора. Только из окружения.
func OperatorKey() string {
	return os.Getenv("PRIVATE_KEY")
}

// JWTSecret возвращает секрет подписи токенов. Только из окружения.
func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// MariaPassword возвращает пароль MariaDB. Только из окружения.
func MariaPassword() string {
	return os.Getenv("MARIA_PASSWORD")
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// getStringWithEnvFallback возвращает строку с приоритетом: config -> env -> default
func getStringWithEnvFallback(configVal string, envVar string, defaultVal string) string {
	if configVal != "" {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultVal
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV GATEWAY_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("GATEWAY_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package config

import (
	"strings"

	"github.com/spf13/viper"

	logging "github.com/ProjectsTask/EasySwapTrade/base/logger"
	"github.com/ProjectsTask/EasySwapTrade/base/stores/gdb"
)

// Config 应用全局配置
type Config struct {
	Api        Api             `toml:"api" mapstructure:"api" json:"api"`
	Log        logging.LogConf `toml:"log" mapstructure:"log" json:"log"`
	Kv         *KvConf         `toml:"kv" mapstructure:"kv" json:"kv"`
	DB         *gdb.Config     `toml:"db" mapstructure:"db" json:"db"`
	Chain      ChainCfg        `toml:"chain_cfg" mapstructure:"chain_cfg" json:"chain_cfg"`
	Signing    SigningCfg      `toml:"signing_cfg" mapstructure:"signing_cfg" json:"signing_cfg"`
	Governance GovernanceCfg   `toml:"governance_cfg" mapstructure:"governance_cfg" json:"governance_cfg"`
	Settler    SettlerCfg      `toml:"settler_cfg" mapstructure:"settler_cfg" json:"settler_cfg"`
	ProjectCfg ProjectCfg      `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"`
}

// Api HTTP 服务配置
type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"`
}

// ChainCfg 账本标识，进入签名 domain
type ChainCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"`
	ID   int64  `toml:"id" mapstructure:"id" json:"id"`
}

// SigningCfg EIP-712 domain 参数，绑定部署实例
type SigningCfg struct {
	DomainName        string `toml:"domain_name" mapstructure:"domain_name" json:"domain_name"`
	DomainVersion     string `toml:"domain_version" mapstructure:"domain_version" json:"domain_version"`
	VerifyingContract string `toml:"verifying_contract" mapstructure:"verifying_contract" json:"verifying_contract"`
}

// GovernanceCfg 治理层地址，市场参数变更的唯一授权方
type GovernanceCfg struct {
	Admin string `toml:"admin" mapstructure:"admin" json:"admin"`
}

// SettlerCfg 后台结算循环配置
type SettlerCfg struct {
	Enable          bool  `toml:"enable" mapstructure:"enable" json:"enable"`
	IntervalSeconds int64 `toml:"interval_seconds" mapstructure:"interval_seconds" json:"interval_seconds"`
}

// ProjectCfg 项目配置
type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"`
}

// KvConf KV 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"`
}

// Redis 连接配置
type Redis struct {
	Host string `toml:"host" mapstructure:"host" json:"host"`
	Type string `toml:"type" mapstructure:"type" json:"type"`
	Pass string `toml:"pass" mapstructure:"pass" json:"pass"`
}

// UnmarshalConfig 加载并解析指定路径的配置文件
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("ESTRADE")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// UnmarshalCmdConfig 解析 cobra 侧已定位好的配置文件
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

package logger

// LogConf 日志配置
type LogConf struct {
	ServiceName string `toml:"service_name" mapstructure:"service_name" json:"service_name"` // 服务名称
	Mode        string `toml:"mode" mapstructure:"mode" json:"mode"`                         // 输出模式 (console, file)
	Path        string `toml:"path" mapstructure:"path" json:"path"`                         // 文件输出路径
	Level       string `toml:"level" mapstructure:"level" json:"level"`                      // 日志级别 (debug, info, warn, error)
	Compress    bool   `toml:"compress" mapstructure:"compress" json:"compress"`             // 是否压缩历史日志
	KeepDays    int    `toml:"keep_days" mapstructure:"keep_days" json:"keep_days"`          // 历史日志保留天数
	MaxSize     int    `toml:"max_size" mapstructure:"max_size" json:"max_size"`             // 单文件最大体积 (MB)
}

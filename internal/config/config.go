package config

import (
	"time"

	"github.com/blues/cps/internal/logger"
	"github.com/blues/cps/internal/model"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Buffers  BufferConfig   `mapstructure:"buffers"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CalendarConfig 资源日历配置
type CalendarConfig struct {
	WorkingWeekdays []int            `mapstructure:"working_weekdays"` // 工作日（0=周日）
	DayStart        string           `mapstructure:"day_start"`        // 每日开工时间 HH:MM
	DayEnd          string           `mapstructure:"day_end"`          // 每日收工时间 HH:MM
	Holidays        []string         `mapstructure:"holidays"`         // 节假日，格式 2006-01-02
	Shutdowns       []ShutdownConfig `mapstructure:"shutdowns"`        // 停工时段
	Overtime        OvertimeConfig   `mapstructure:"overtime"`
}

// ShutdownConfig 停工时段配置
type ShutdownConfig struct {
	From string `mapstructure:"from"` // 起始日期，格式 2006-01-02
	To   string `mapstructure:"to"`   // 结束日期（含），格式 2006-01-02
}

// OvertimeConfig 加班政策配置
type OvertimeConfig struct {
	Authorized     bool    `mapstructure:"authorized"`      // 是否允许加班
	MaxHoursDay    float64 `mapstructure:"max_hours_day"`   // 每日加班上限（小时）
	MaxHoursWeek   float64 `mapstructure:"max_hours_week"`  // 每周加班上限（小时）
	CostMultiplier float64 `mapstructure:"cost_multiplier"` // 加班费率系数
}

// BufferConfig 整体缓冲默认值（优化请求未指定时使用）
type BufferConfig struct {
	WeatherDays int     `mapstructure:"weather_days"` // 天气缓冲天数
	Quality     float64 `mapstructure:"quality"`      // 质量缓冲比例（0-1）
	Risk        float64 `mapstructure:"risk"`         // 风险缓冲比例（0-1）
}

type TaskConfig struct {
	Interval int  `mapstructure:"interval"` // 秒
	Enabled  bool `mapstructure:"enabled"`  // 是否启动后台任务
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.Config 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.Config 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.Config 接口
func (l LogConfig) GetFile() string {
	return l.File
}

// ToCalendar 把日历配置转成排程引擎用的资源日历。
// 日期解析失败的条目记警告后跳过，不中断启动。
func (c CalendarConfig) ToCalendar() model.ResourceCalendar {
	cal := model.DefaultCalendar()

	if len(c.WorkingWeekdays) > 0 {
		weekdays := make([]time.Weekday, 0, len(c.WorkingWeekdays))
		for _, wd := range c.WorkingWeekdays {
			if wd < 0 || wd > 6 {
				logger.Warn("Ignoring invalid working weekday: %d", wd)
				continue
			}
			weekdays = append(weekdays, time.Weekday(wd))
		}
		if len(weekdays) > 0 {
			cal.WorkingWeekdays = weekdays
		}
	}
	if c.DayStart != "" {
		cal.DayStart = c.DayStart
	}
	if c.DayEnd != "" {
		cal.DayEnd = c.DayEnd
	}

	for _, h := range c.Holidays {
		d, err := time.Parse("2006-01-02", h)
		if err != nil {
			logger.Warn("Ignoring invalid holiday %q: %v", h, err)
			continue
		}
		cal.Holidays = append(cal.Holidays, d)
	}

	for _, s := range c.Shutdowns {
		from, err := time.Parse("2006-01-02", s.From)
		if err != nil {
			logger.Warn("Ignoring shutdown with invalid from date %q: %v", s.From, err)
			continue
		}
		to, err := time.Parse("2006-01-02", s.To)
		if err != nil {
			logger.Warn("Ignoring shutdown with invalid to date %q: %v", s.To, err)
			continue
		}
		cal.Shutdowns = append(cal.Shutdowns, model.DateRange{From: from, To: to})
	}

	cal.Overtime = model.OvertimePolicy{
		Authorized:     c.Overtime.Authorized,
		MaxHoursDay:    c.Overtime.MaxHoursDay,
		MaxHoursWeek:   c.Overtime.MaxHoursWeek,
		CostMultiplier: c.Overtime.CostMultiplier,
	}

	return cal
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cps")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "scheduling")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("calendar.working_weekdays", []int{1, 2, 3, 4, 5})
	viper.SetDefault("calendar.day_start", "08:00")
	viper.SetDefault("calendar.day_end", "17:00")
	viper.SetDefault("calendar.overtime.authorized", false)
	viper.SetDefault("calendar.overtime.max_hours_day", 2)
	viper.SetDefault("calendar.overtime.max_hours_week", 10)
	viper.SetDefault("calendar.overtime.cost_multiplier", 1.5)
	viper.SetDefault("buffers.weather_days", 0)
	viper.SetDefault("buffers.quality", 0.05)
	viper.SetDefault("buffers.risk", 0.0)
	viper.SetDefault("task.interval", 300)
	viper.SetDefault("task.enabled", true)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

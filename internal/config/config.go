package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 客户端配置
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Redis  RedisConfig  `yaml:"redis"`
	Player PlayerConfig `yaml:"player"`
	Sound  SoundConfig  `yaml:"sound"`
}

// GameConfig 牌局配置
type GameConfig struct {
	HandSize        int `yaml:"hand_size"`         // 每轮每人发牌数
	AIThinkDelay    int `yaml:"ai_think_delay"`    // 电脑思考时间（毫秒）
	FirstPlayerPool int `yaml:"first_player_pool"` // 决定先手的抽牌池大小
}

// RedisConfig Redis 配置，用于记住访客昵称
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PlayerConfig 本地玩家配置
type PlayerConfig struct {
	ProfileKey  string `yaml:"profile_key"`  // 访客档案的键
	DefaultName string `yaml:"default_name"` // 没有保存昵称时使用，为空则随机生成
}

// SoundConfig 音效配置
type SoundConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

const (
	defaultHandSize        = 10
	defaultAIThinkDelay    = 800
	defaultFirstPlayerPool = 5
	defaultRedisAddr       = "localhost:6379"
	defaultProfileKey      = "local"
	defaultSoundDir        = "assets/sounds"
)

// AIThinkDelayDuration 返回电脑思考时长
func (c *GameConfig) AIThinkDelayDuration() time.Duration {
	return time.Duration(c.AIThinkDelay) * time.Millisecond
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// 设置默认值
	if cfg.Game.HandSize <= 0 {
		cfg.Game.HandSize = defaultHandSize
	}
	if cfg.Game.AIThinkDelay < 0 {
		cfg.Game.AIThinkDelay = 0
	} else if cfg.Game.AIThinkDelay == 0 {
		cfg.Game.AIThinkDelay = defaultAIThinkDelay
	}
	if cfg.Game.FirstPlayerPool < 2 {
		cfg.Game.FirstPlayerPool = defaultFirstPlayerPool
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Player.ProfileKey == "" {
		cfg.Player.ProfileKey = defaultProfileKey
	}
	if cfg.Sound.Dir == "" {
		cfg.Sound.Dir = defaultSoundDir
	}

	return &cfg, nil
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Game: GameConfig{
			HandSize:        defaultHandSize,
			AIThinkDelay:    defaultAIThinkDelay,
			FirstPlayerPool: defaultFirstPlayerPool,
		},
		Redis: RedisConfig{
			Addr: defaultRedisAddr,
		},
		Player: PlayerConfig{
			ProfileKey: defaultProfileKey,
		},
		Sound: SoundConfig{
			Enabled: true,
			Dir:     defaultSoundDir,
		},
	}
}

// Package config предоставляет конфигурацию приложения с сохранением в TOML-файл.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	appDir   = "voxbar"
	fileName = "config.toml"
)

// Config хранит настройки приложения. Горячие клавиши сюда не входят:
// они фиксируются при запуске процесса.
type Config struct {
	UILanguage    string       `toml:"ui_language"`
	Notifications bool         `toml:"notifications"`
	LogLevel      string       `toml:"log_level"`
	Bridge        BridgeConfig `toml:"bridge"`
	MainWindow    WindowConfig `toml:"main_window"`
	Widget        WidgetConfig `toml:"widget"`
}

// BridgeConfig - WebSocket-мост для внешних UI.
type BridgeConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
	// AllowedOrigins - origin'ы браузерных клиентов, которым разрешено
	// подключаться. Клиенты без заголовка Origin допускаются всегда.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// WindowConfig - размер окна в dp.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// WidgetConfig - размер плавающего виджета и отступ от нижнего края экрана.
type WidgetConfig struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	BottomMargin float64 `toml:"bottom_margin"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		UILanguage:    "en",
		Notifications: true,
		LogLevel:      "info",
		Bridge: BridgeConfig{
			Enabled: true,
			Addr:    "127.0.0.1:47821",
		},
		MainWindow: WindowConfig{
			Width:  420,
			Height: 260,
		},
		Widget: WidgetConfig{
			Width:        300,
			Height:       80,
			BottomMargin: 110,
		},
	}
}

// Path возвращает путь к файлу конфигурации.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: каталог пользователя: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load читает конфигурацию из стандартного пути.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile читает конфигурацию из path. Если файла нет, он создаётся
// со значениями по умолчанию. Отсутствующие ключи сохраняют умолчания.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("config: создание файла по умолчанию: %w", err)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: разбор %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("неизвестный ключ конфигурации", "key", key.String())
	}

	cfg.normalize()
	return cfg, nil
}

// Save записывает конфигурацию в path, создавая каталог при необходимости.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// normalize подставляет умолчания вместо некорректных значений.
func (c *Config) normalize() {
	def := Default()
	if c.UILanguage == "" {
		c.UILanguage = def.UILanguage
	}
	if c.MainWindow.Width <= 0 || c.MainWindow.Height <= 0 {
		c.MainWindow = def.MainWindow
	}
	if c.Widget.Width <= 0 || c.Widget.Height <= 0 {
		c.Widget.Width, c.Widget.Height = def.Widget.Width, def.Widget.Height
	}
	if c.Widget.BottomMargin < 0 {
		c.Widget.BottomMargin = def.Widget.BottomMargin
	}
	if c.Bridge.Addr == "" {
		c.Bridge.Addr = def.Bridge.Addr
	}
	if len(c.Bridge.AllowedOrigins) == 0 {
		c.Bridge.AllowedOrigins = nil
	}
}

// SlogLevel переводит log_level в уровень slog. Неизвестное значение - Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

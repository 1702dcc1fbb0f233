package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Compose  ComposeConfig  `yaml:"compose"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type DataConfig struct {
	Dir         string `yaml:"dir"`          // 데이터 루트 디렉터리
	DocumentDir string `yaml:"document_dir"` // 생성 문서(PDF) 저장 디렉터리
}

// ComposeConfig 문서 조판 설정
type ComposeConfig struct {
	FontPath     string `yaml:"font_path"`      // 본문 TTF 폰트 (한글 지원 필수)
	FontBoldPath string `yaml:"font_bold_path"` // 굵은 글씨 TTF 폰트 (없으면 본문 폰트 사용)
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/backoffice.db",
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Compose: ComposeConfig{
			FontPath: "./assets/fonts/NanumGothic.ttf",
		},
	}

	// 설정 파일이 있으면 기본값 위에 덮어쓴다
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config.yaml"
	}
	if data, err := os.ReadFile(configPath); err == nil {
		_ = yaml.Unmarshal(data, config)
	}

	// 환경 변수가 설정 파일보다 우선한다
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if docDir := os.Getenv("DOCUMENT_DIR"); docDir != "" {
		config.Data.DocumentDir = docDir
	}
	if fontPath := os.Getenv("COMPOSE_FONT_PATH"); fontPath != "" {
		config.Compose.FontPath = fontPath
	}
	if fontBoldPath := os.Getenv("COMPOSE_FONT_BOLD_PATH"); fontBoldPath != "" {
		config.Compose.FontBoldPath = fontBoldPath
	}

	if config.Data.DocumentDir == "" {
		config.Data.DocumentDir = filepath.Join(config.Data.Dir, "documents")
	}

	return config
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}

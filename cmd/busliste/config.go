package main

import (
	"encoding/base64"

	"github.com/hatlonely/busliste/bus"
	"github.com/hatlonely/busliste/cfg"
	"github.com/hatlonely/busliste/log/logger"
	"github.com/hatlonely/busliste/rdb"
	"github.com/hatlonely/busliste/rdb/database"
	"github.com/pkg/errors"
)

const envPrefix = "BUSLISTE"

// Config 命令行和服务共用的配置
//
//	database:
//	  driver: sqlite3
//	  database: busliste.db
//	log:
//	  level: info
//	mail:
//	  email: bus@example.com
//	  creds: secret
//	  smtpServer: smtp.example.com
//	jwtKey: c2VjcmV0LXNlY3JldC1zZWNyZXQtc2VjcmV0LXNlY3JldA==
type Config struct {
	Database database.SQLOptions `cfg:"database"`
	Log      logger.SLogOptions  `cfg:"log"`
	Store    bus.StoreOptions    `cfg:"store"`
	Mail     MailOptions         `cfg:"mail"`

	// JWTKey 会话签名密钥，base64 编码
	JWTKey Base64Key `cfg:"jwtKey" validate:"omitempty,min=32"`
}

type MailOptions struct {
	// Email 发送登录链接的邮箱
	Email      rdb.Address `cfg:"email"`
	Creds      string      `cfg:"creds"`
	SMTPServer string      `cfg:"smtpServer" validate:"required_with=Creds"`
}

// Base64Key 配置中是标准 base64 文本
type Base64Key []byte

func (k *Base64Key) UnmarshalText(text []byte) error {
	b, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return errors.Wrap(err, "invalid base64 key")
	}
	*k = b
	return nil
}

func loadConfig(filename string) (*Config, error) {
	var config Config
	if err := cfg.Load(filename, &config, cfg.WithEnvPrefix(envPrefix)); err != nil {
		return nil, errors.WithMessage(err, "load config failed")
	}
	return &config, nil
}

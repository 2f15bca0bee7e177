// Copyright 2021 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ecodeclub/eorm-study/internal/dialect"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// ProfileLocal 启动的时候会初始化数据
const ProfileLocal = "local"

type Config struct {
	Profile  string `env:"PROFILE" envDefault:"local"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	DB       DBConfig
}

type DBConfig struct {
	Driver    string   `env:"DB_DRIVER" envDefault:"sqlite3"`
	DSN       string   `env:"DB_DSN" envDefault:"file:querydsl.db?cache=shared&mode=memory"`
	SlaveDSNs []string `env:"DB_SLAVE_DSNS" envSeparator:","`
	// LogQueries 为 true 的时候打印 SQL，
	// SlowThreshold 大于 0 的时候只打印慢查询
	LogQueries    bool          `env:"DB_LOG_QUERIES"`
	SlowThreshold time.Duration `env:"DB_SLOW_THRESHOLD"`
}

// Load 先读取 .env 文件，再解析环境变量。
// 已经存在的环境变量不会被 .env 覆盖，文件不存在也不是错误
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.DB.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsLocal() bool {
	return c.Profile == ProfileLocal
}

// normalize 校验 driver，MySQL 的 DSN 强制 parseTime=true
func (c *DBConfig) normalize() error {
	if _, err := dialect.Of(c.Driver); err != nil {
		return err
	}
	if c.Driver != "mysql" {
		return nil
	}
	var err error
	if c.DSN, err = mysqlDSN(c.DSN); err != nil {
		return err
	}
	for i, dsn := range c.SlaveDSNs {
		if c.SlaveDSNs[i], err = mysqlDSN(dsn); err != nil {
			return err
		}
	}
	return nil
}

func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

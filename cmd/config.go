/*
Copyright © 2022 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the validated form of the configuration file and the CLASSIC_
// environment variables.
type Config struct {
	Progress struct {
		Interval uint64 `mapstructure:"interval"`
	} `mapstructure:"progress"`
	Tracker struct {
		Strict bool `mapstructure:"strict"`
	} `mapstructure:"tracker"`
	Score struct {
		Ngram  int    `mapstructure:"ngram" validate:"min=1,max=6"`
		Corpus string `mapstructure:"corpus" validate:"omitempty,file"`
	} `mapstructure:"score"`
	Log struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
		JSON  bool   `mapstructure:"json"`
	} `mapstructure:"log"`
	Metrics struct {
		File string `mapstructure:"file"`
	} `mapstructure:"metrics"`
	Trace struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"trace"`
}

var validate = validator.New()

// setDefaults installs the values used when neither the file nor the
// environment names a key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("progress.interval", 0)
	v.SetDefault("tracker.strict", false)
	v.SetDefault("score.ngram", 3)
	v.SetDefault("score.corpus", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("metrics.file", "")
	v.SetDefault("trace.enabled", false)
}

// loadConfig decodes and validates the settings held by v.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bgallie/classic/cryptors"
	"github.com/bgallie/classic/cryptors/catalog"
	"github.com/bgallie/classic/logging"
	"github.com/bgallie/classic/score"
	"github.com/bgallie/classic/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	stateFile  string
	cipherType string
	keySpec    string
	period     int
	cfg        Config
	logger     = logging.Discard()
	registry   *cryptors.Registry
	promReg    *prometheus.Registry
	metrics    *search.Metrics
	shutdown   = func(context.Context) error { return nil }
	Version    = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classic",
	Short: "Encipher, decipher and solve classical ciphers",
	Long: `classic enciphers and deciphers the classical pencil and paper ciphers and
searches for the key of a ciphertext by scoring candidate plaintexts against an
n-gram model of English.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return finish(cmd.Context())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.classic.yaml)")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state", "", "workspace file holding the cipher between commands")
	rootCmd.PersistentFlags().StringVarP(&cipherType, "type", "t", "", "cipher type (see \"classic types\")")
	rootCmd.PersistentFlags().StringVarP(&keySpec, "key", "k", "", "key in the cipher's own notation")
	rootCmd.PersistentFlags().IntVarP(&period, "period", "p", 0, "period, block size or column count")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("trace", false, "write a trace of each solve to standard error")
	rootCmd.PersistentFlags().String("metrics-file", "", "write search metrics to this file in the Prometheus text format")
	cobra.CheckErr(viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("trace.enabled", rootCmd.PersistentFlags().Lookup("trace")))
	cobra.CheckErr(viper.BindPFlag("metrics.file", rootCmd.PersistentFlags().Lookup("metrics-file")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".classic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".classic")
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("CLASSIC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setup turns the configuration into the logger, scorer and registry every
// command works with.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = loadConfig(viper.GetViper()); err != nil {
		return err
	}
	if logger, err = logging.New(logging.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON}); err != nil {
		return err
	}
	slog.SetDefault(logger)
	scorer, err := newScorer(cfg)
	if err != nil {
		return err
	}
	registry = catalog.New(scorer)
	promReg = prometheus.NewRegistry()
	metrics = search.NewMetrics(promReg)
	if cfg.Trace.Enabled {
		if shutdown, err = setupTracing(os.Stderr); err != nil {
			return err
		}
	}
	return nil
}

// finish flushes the trace and writes the metrics file.
func finish(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := shutdown(ctx); err != nil {
		return err
	}
	if cfg.Metrics.File != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.File, promReg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Debug("metrics written", "file", cfg.Metrics.File)
	}
	return nil
}

// newScorer builds the n-gram scorer from the configured corpus, or from the
// built in sample when none is named.
func newScorer(cfg Config) (score.Scorer, error) {
	var (
		g   *score.Ngram
		err error
	)
	if cfg.Score.Corpus == "" {
		g, err = score.English(cfg.Score.Ngram)
	} else {
		var f *os.File
		if f, err = os.Open(cfg.Score.Corpus); err != nil {
			return nil, err
		}
		defer f.Close()
		logger.Info("training scorer", "corpus", cfg.Score.Corpus, "n", cfg.Score.Ngram)
		g, err = score.NewNgram(f, cfg.Score.Ngram)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("scorer ready", "n", g.N())
	return g, nil
}

// readText joins the command line arguments, or reads all of in when there
// are none.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// candidate inspects candidate receipts and checks them the way a relay chain
// validator would.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-parachain/config"
	"github.com/spacemeshos/go-parachain/config/presets"
	"github.com/spacemeshos/go-parachain/log"
)

var (
	configPath string
	preset     string
	logLevel   string
	elastic    bool

	conf   = config.DefaultConfig()
	fs     = afero.NewOsFs()
	logger = log.NewNop()
)

func init() {
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "load configuration from file")
	cmd.PersistentFlags().StringVarP(&preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overwrites the app logging level")
	cmd.PersistentFlags().BoolVar(&elastic, "elastic-scaling", false,
		"backed candidates carry a core index in their validator bitfield")

	cmd.AddCommand(decodeCmd, hashCmd, checkCmd, backedCmd)
}

var cmd = &cobra.Command{
	Use:           "candidate",
	Short:         "inspect and check parachain candidate receipts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("elastic-scaling") {
			loaded.Backing.ElasticScaling = elastic
		}
		if logLevel != "" {
			loaded.Logging.AppLoggerLevel = logLevel
		}
		conf = loaded
		logger, err = newLogger(conf.Logging.AppLoggerLevel)
		if err != nil {
			return log.ErrBadFlags(err)
		}
		return nil
	},
}

func loadConfig() (config.Config, error) {
	loaded := config.DefaultConfig()
	if preset != "" {
		p, err := presets.Get(preset)
		if err != nil {
			return loaded, log.ErrBadFlags(err)
		}
		loaded = p
	}
	if configPath == "" {
		return loaded, nil
	}
	vip := viper.New()
	if err := config.LoadConfig(fs, configPath, vip); err != nil {
		return loaded, log.ErrMalformedConfig(err)
	}
	if err := config.Unmarshal(vip, &loaded); err != nil {
		return loaded, log.ErrMalformedConfig(err)
	}
	return loaded, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encoder, err := log.NewEncoder(conf.Logging.Encoder)
	if err != nil {
		return nil, err
	}
	return log.New("candidate", lvl, encoder), nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := cmd.ExecuteContext(log.WithNewRequestID(ctx)); err != nil {
		report(logger, err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// report logs the stable code of a fatal error, wrapped or not.
func report(logger *zap.Logger, err error) {
	var fe *log.FatalError
	if errors.As(err, &fe) {
		logger.Error("command failed", zap.Object("fatal", fe), zap.Error(err))
	}
}

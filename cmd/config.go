package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trainer400/CampoMinato/game"
)

// loadConfig merges flags, CAMPOMINATO_* environment variables and the
// optional YAML config file, in that order of precedence
func loadConfig(cmd *cobra.Command, path string) (game.GameConfig, error) {
	gameConfig := game.NewGameConfig()

	vp := viper.New()
	vp.SetEnvPrefix("campominato")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()
	if err := vp.BindPFlags(cmd.Flags()); err != nil {
		return gameConfig, errors.Wrap(err, "binding flags")
	}

	vp.SetConfigType("yaml")
	if path != "" {
		vp.SetConfigFile(path)
	} else {
		vp.SetConfigName("campominato")
		vp.AddConfigPath(".")
	}
	if err := vp.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || path != "" {
			return gameConfig, errors.Wrap(err, "reading config")
		}
	}

	logger := logrus.New()
	logger.Out = cmd.ErrOrStderr()
	level, err := logrus.ParseLevel(vp.GetString("log-level"))
	if err != nil {
		return gameConfig, errors.Wrap(err, "parsing log level")
	}
	logger.SetLevel(level)
	gameConfig.Logger = logger

	gameConfig.Width = vp.GetInt("width")
	gameConfig.Height = vp.GetInt("height")
	gameConfig.CellSize = vp.GetFloat64("cell-size")
	gameConfig.MineProbability = vp.GetFloat64("mine-probability")
	gameConfig.DirectorInterval = vp.GetDuration("director-interval")

	gameConfig.Seed = vp.GetInt64("seed")
	if gameConfig.Seed == 0 {
		gameConfig.Seed = time.Now().UnixNano()
	}

	if layoutPath := vp.GetString("layout"); layoutPath != "" {
		contents, err := os.ReadFile(layoutPath)
		if err != nil {
			return gameConfig, errors.Wrap(err, "reading layout")
		}
		snapshot, err := game.LoadSnapshot(string(contents))
		if err != nil {
			return gameConfig, err
		}
		if _, err := snapshot.Layout(); err != nil {
			return gameConfig, errors.Wrapf(err, "layout %s", layoutPath)
		}
		gameConfig.Snapshot = snapshot
		if snapshot.Seed != 0 {
			gameConfig.Seed = snapshot.Seed
		}
	}

	director, err := newDirector(vp.GetString("director"), gameConfig.Seed, logger)
	if err != nil {
		return gameConfig, err
	}
	gameConfig.Director = director

	logger.WithFields(logrus.Fields{
		"width":    gameConfig.Width,
		"height":   gameConfig.Height,
		"seed":     gameConfig.Seed,
		"director": vp.GetString("director"),
		"config":   vp.ConfigFileUsed(),
	}).Debug("configuration loaded")

	return gameConfig, nil
}

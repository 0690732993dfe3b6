package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-trackgeo/cache"
	"github.com/cwbudde/algo-trackgeo/engine"
	"github.com/cwbudde/algo-trackgeo/internal/logging"
)

// app is the state shared by all sub-commands of one invocation.
type app struct {
	v      *viper.Viper
	params Params
	engine *engine.Engine
	logger *zap.Logger

	paramsFile   string
	logLevel     string
	development  bool
	memFraction  float64
	cacheEntries int
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "trackplan",
		Short:        "Restore track irregularity and compute plan lines and movements",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&a.paramsFile, "params", "", "parameter file (yaml, json or toml)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.development, "dev", false, "human-readable development logging")
	pf.Float64Var(&a.memFraction, "cache-memory-fraction", 0.05, "fraction of available memory the result cache may use")
	pf.IntVar(&a.cacheEntries, "cache-entries", cache.DefaultMaxEntries, "maximum number of cached results")

	root.AddCommand(newRestoreCmd(a), newWavebandsCmd(a), newPlanCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys := f.Annotations[viperKey]; len(keys) == 1 && bindErr == nil {
			bindErr = a.v.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	a.logger = logging.New(
		logging.WithLevel(a.logLevel),
		logging.WithDevelopment(a.development),
		logging.WithFields(map[string]any{"cmd": "trackplan"}),
	)

	p, err := loadParams(a.v, a.paramsFile)
	if err != nil {
		return err
	}
	a.params = p

	c := cache.New(
		cache.WithMaxEntries(a.cacheEntries),
		cache.WithSystemMemoryFraction(a.memFraction),
	)
	a.engine = engine.New(engine.WithCache(c), engine.WithLogger(a.logger))
	a.logger.Debug("parameters loaded", zap.String("file", a.paramsFile), zap.Any("params", a.params))
	return nil
}

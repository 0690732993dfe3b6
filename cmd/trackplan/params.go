package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-trackgeo/engine"
)

// Params is the persisted parameter set. Keys mirror the engine configs.
type Params struct {
	Restore     engine.RestoreConfig     `mapstructure:"restore"`
	Wavebands   engine.WavebandConfig    `mapstructure:"wavebands"`
	PlanLine    engine.PlanLineConfig    `mapstructure:"plan_line"`
	Optimize    engine.OptimizeConfig    `mapstructure:"optimize"`
	Movement    engine.MovementConfig    `mapstructure:"movement"`
	Improvement engine.ImprovementConfig `mapstructure:"improvement"`
}

// DefaultParams returns every engine default.
func DefaultParams() Params {
	return Params{
		Restore:     engine.DefaultRestoreConfig(),
		Wavebands:   engine.DefaultWavebandConfig(),
		PlanLine:    engine.DefaultPlanLineConfig(),
		Optimize:    engine.DefaultOptimizeConfig(),
		Movement:    engine.DefaultMovementConfig(),
		Improvement: engine.DefaultImprovementConfig(),
	}
}

// loadParams decodes v over the defaults. When path is set the file is
// read first; its format follows the extension.
func loadParams(v *viper.Viper, path string) (Params, error) {
	p := DefaultParams()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Params{}, fmt.Errorf("read parameter file: %w", err)
		}
	}
	if err := v.Unmarshal(&p); err != nil {
		return Params{}, fmt.Errorf("decode parameters: %w", err)
	}
	return p, nil
}

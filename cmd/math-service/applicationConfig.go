package main

import (
	"fmt"
	"math-service/internal/pkg/mathOperations"
)

type applicationConfig struct {
	Host string `config_default:"0.0.0.0" config_description:"Server host interface"`
	Port int    `config_default:"8000" config_description:"Server port"`

	// Feature toggles
	MathAdditionEnabled    bool `config_default:"true" config_description:"Enable the addition operation"`
	MathSubtractionEnabled bool `config_default:"false" config_description:"Enable the subtraction operation"`
	MathDivisionEnabled    bool `config_default:"false" config_description:"Enable the division operation"`

	LibraryVersion string `config_default:"1.3.0" config_description:"Math library version reported by /health"`
	LogLevel       string `config_default:"info" config_description:"Log level (trace, debug, info, warn, error)"`
	MetricsEnabled bool   `config_default:"true" config_description:"Expose Prometheus metrics on /metrics"`
}

func (appConfig *applicationConfig) Validate() error {
	if appConfig.Port < 0 || appConfig.Port > 65535 {
		return fmt.Errorf("port %d out of range", appConfig.Port)
	}
	return nil
}

func (appConfig *applicationConfig) features() mathOperations.Features {
	return mathOperations.Features{
		Addition:    appConfig.MathAdditionEnabled,
		Subtraction: appConfig.MathSubtractionEnabled,
		Division:    appConfig.MathDivisionEnabled,
	}
}

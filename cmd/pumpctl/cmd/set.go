package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

var units string

func parseValue(logger *zap.Logger, arg string) float64 {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		logger.Fatal("Not a number", zap.String("arg", arg))
	}
	return v
}

var rateCmd = &cobra.Command{
	Use:   "rate <value>",
	Short: "Set the pumping rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		v := parseValue(logger, args[0])
		p := connect(logger)
		defer closePump(logger, p)
		ok, err := p.SetRate(v, pump.RateUnits(units))
		if err != nil {
			logger.Fatal("Failed to set rate", zap.Error(err))
		}
		if !ok {
			logger.Fatal("Rate rejected", zap.Float64("rate", v), zap.String("units", units))
		}
	},
}

var diameterCmd = &cobra.Command{
	Use:   "diameter <mm>",
	Short: "Set the syringe bore diameter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		v := parseValue(logger, args[0])
		p := connect(logger)
		defer closePump(logger, p)
		ok, err := p.SetDiameter(v)
		if err != nil {
			logger.Fatal("Failed to set diameter", zap.Error(err))
		}
		if !ok {
			logger.Fatal("Diameter rejected", zap.Float64("mm", v))
		}
	},
}

var targetCmd = &cobra.Command{
	Use:   "target <ml>",
	Short: "Set the target volume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		v := parseValue(logger, args[0])
		p := connect(logger)
		defer closePump(logger, p)
		ok, err := p.SetTargetVolume(v)
		if err != nil {
			logger.Fatal("Failed to set target volume", zap.Error(err))
		}
		if !ok {
			logger.Fatal("Target volume rejected", zap.Float64("ml", v))
		}
	},
}

var clearTargetCmd = &cobra.Command{
	Use:   "clear-target",
	Short: "Remove the programmed target volume",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		if err := p.ClearTargetVolume(); err != nil {
			logger.Fatal("Failed to clear target volume", zap.Error(err))
		}
	},
}

var clearVolumeCmd = &cobra.Command{
	Use:   "clear-volume",
	Short: "Zero the delivered-volume counter",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		if err := p.ClearPumpedVolume(); err != nil {
			logger.Fatal("Failed to clear pumped volume", zap.Error(err))
		}
	},
}

func init() {
	rateCmd.Flags().StringVarP(&units, "units", "u", string(pump.MlPerMin), "rate units: ml/m, ml/hr, ul/m, ul/hr")
	rootCmd.AddCommand(rateCmd, diameterCmd, targetCmd, clearTargetCmd, clearVolumeCmd)
}

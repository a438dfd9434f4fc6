package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

var (
	infuseVolume float64
	infuseRate   float64
	infuseUnits  string
	infuseCycles int
)

// infuseCmd drives the pump through repeated delivery cycles: program the
// rate once, then per cycle zero the counter, set the target volume, run,
// and wait for the pump to stop itself at the target.
var infuseCmd = &cobra.Command{
	Use:   "infuse",
	Short: "Repeatedly deliver the target volume",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		ok, err := p.SetRate(infuseRate, pump.RateUnits(infuseUnits))
		if err != nil {
			logger.Fatal("Failed to set rate", zap.Error(err))
		}
		if !ok {
			logger.Fatal("Rate rejected", zap.Float64("rate", infuseRate), zap.String("units", infuseUnits))
		}
		for i := 0; i < infuseCycles; i++ {
			if err := p.ClearPumpedVolume(); err != nil {
				logger.Fatal("Failed to clear pumped volume", zap.Error(err))
			}
			ok, err := p.SetTargetVolume(infuseVolume)
			if err != nil {
				logger.Fatal("Failed to set target volume", zap.Error(err))
			}
			if !ok {
				logger.Fatal("Target volume rejected", zap.Float64("ml", infuseVolume))
			}
			if err := p.Run(pump.Forward); err != nil {
				logger.Fatal("Failed to start pump", zap.Error(err))
			}
			for {
				time.Sleep(time.Second)
				st, err := p.Status()
				if err != nil {
					logger.Fatal("Failed to read status", zap.Error(err))
				}
				if st == pump.Stalled {
					logger.Fatal("Pump stalled", zap.Int("cycle", i+1))
				}
				if st == pump.Stopped {
					break
				}
			}
			logger.Info("Cycle complete", zap.Int("cycle", i+1), zap.Float64("ml", infuseVolume))
		}
	},
}

func init() {
	infuseCmd.Flags().Float64VarP(&infuseVolume, "volume", "v", 1.0, "volume to deliver per cycle, in ml")
	infuseCmd.Flags().Float64VarP(&infuseRate, "rate", "r", 1.0, "pumping rate")
	infuseCmd.Flags().StringVarP(&infuseUnits, "units", "u", string(pump.MlPerMin), "rate units: ml/m, ml/hr, ul/m, ul/hr")
	infuseCmd.Flags().IntVarP(&infuseCycles, "cycles", "n", 1, "number of delivery cycles")
	rootCmd.AddCommand(infuseCmd)
}

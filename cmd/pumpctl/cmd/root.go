package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/comm/serial"
	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/env"
	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

var (
	portFlag string
	baudFlag int
)

// rootCmd represents the root command
var rootCmd = &cobra.Command{
	Use:   "pumpctl",
	Short: "pumpctl controls a Harvard Apparatus syringe pump over a serial port",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portFlag, "port", "p", "", "serial port (defaults to PUMP_SERIAL_PORT)")
	rootCmd.PersistentFlags().IntVarP(&baudFlag, "baud", "b", 0, "baud rate (defaults to PUMP_SERIAL_BAUD, then 9600)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

// connect opens the configured port and establishes a pump connection,
// falling back to the environment for anything the flags leave unset.
func connect(logger *zap.Logger) *pump.Pump {
	name, baud := portFlag, baudFlag
	if name == "" {
		e := env.LoadEnv(logger)
		name = e.SerialPort
		if baud == 0 {
			baud = e.Baud
		}
	}
	port, err := serial.OpenPort(name, baud)
	if err != nil {
		logger.Fatal("Failed to open port", zap.Error(err))
	}
	p, err := pump.New(port, logger)
	if err != nil {
		logger.Fatal("Failed to connect to pump", zap.Error(err))
	}
	return p
}

func closePump(logger *zap.Logger, p *pump.Pump) {
	if err := p.Close(); err != nil {
		logger.Error("Failed to close pump", zap.Error(err))
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/comm/serial"
	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

var reverse bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report what the pump is doing",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		st, err := p.Status()
		if err != nil {
			logger.Fatal("Failed to read status", zap.Error(err))
		}
		fmt.Println(st)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the pump",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		dir := pump.Forward
		if reverse {
			dir = pump.Reverse
		}
		if err := p.Run(dir); err != nil {
			logger.Fatal("Failed to start pump", zap.Error(err))
		}
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Halt the pump",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		p := connect(logger)
		defer closePump(logger, p)
		if err := p.Stop(); err != nil {
			logger.Fatal("Failed to stop pump", zap.Error(err))
		}
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports on this host",
	Run: func(cmd *cobra.Command, args []string) {
		pp, err := serial.ListPorts()
		if err != nil {
			panic(err)
		}
		for _, p := range pp {
			fmt.Println(p)
		}
	},
}

func init() {
	runCmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "run in reverse (refill)")
	rootCmd.AddCommand(statusCmd, runCmd, stopCmd, portsCmd)
}

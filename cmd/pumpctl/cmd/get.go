package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/pump"
)

var getCmd = &cobra.Command{
	Use:   "get <diameter|rate|volume|target>",
	Short: "Read a value back from the pump",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		var query func(*pump.Pump) (float64, error)
		switch args[0] {
		case "diameter":
			query = (*pump.Pump).Diameter
		case "rate":
			query = (*pump.Pump).Rate
		case "volume":
			query = (*pump.Pump).PumpedVolume
		case "target":
			query = (*pump.Pump).TargetVolume
		default:
			logger.Fatal("Unknown value", zap.String("arg", args[0]))
		}
		p := connect(logger)
		defer closePump(logger, p)
		v, err := query(p)
		if err != nil {
			logger.Fatal("Query failed", zap.String("value", args[0]), zap.Error(err))
		}
		fmt.Println(v)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}

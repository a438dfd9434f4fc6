package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/comm/serial"
)

type Environment struct {
	SerialPort string
	Baud       int
}

// LoadEnv reads connection parameters from the process environment,
// consulting a .env file when one is present in the working directory.
func LoadEnv(logger *zap.Logger) *Environment {
	_ = godotenv.Load()
	port, found := os.LookupEnv("PUMP_SERIAL_PORT")
	if !found {
		logger.Fatal("PUMP_SERIAL_PORT not set")
	}
	ret := &Environment{
		SerialPort: port,
		Baud:       serial.DefaultBaud,
	}
	if baud, found := os.LookupEnv("PUMP_SERIAL_BAUD"); found {
		baudInt, err := strconv.ParseInt(baud, 10, 64)
		if err != nil {
			logger.Fatal("Failed to parse baud", zap.Error(err))
		}
		ret.Baud = int(baudInt)
	}
	return ret
}

package main

import "github.com/Walker-Research-Group/harvard-aparatus-syringe-pump/cmd/pumpctl/cmd"

func main() {
	cmd.Execute()
}

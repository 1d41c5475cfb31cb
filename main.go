package main

import "github.com/Alijeyrad/dentclinic/cmd"

func main() {
	cmd.Execute()
}

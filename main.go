package main

import "github.com/endorses/patmatch/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/sohelranaweb/hotelier-server/cmd"

func main() {
	cmd.Execute()
}

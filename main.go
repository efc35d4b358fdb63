package main

import "nathanbeddoewebdev/pbsync/cmd"

func main() {
	cmd.Execute()
}

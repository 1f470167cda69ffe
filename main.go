package main

import "github.com/Ddoupal/IPMonitor/cmd"

func main() {
	cmd.Execute()
}

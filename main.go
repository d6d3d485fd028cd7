package main

import "github.com/khrees2412/jobtrack/cmd"

func main() {
	cmd.Execute()
}

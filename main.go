package main

import "github.com/hanifm/school-management/cmd"

func main() {
	cmd.Execute()
}

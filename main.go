package main

import "demoblog/cmd"

func main() {
	cmd.Execute()
}

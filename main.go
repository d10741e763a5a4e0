package main

import "github.com/mindmanager/mindmanager_backend/cmd"

func main() {
	cmd.Execute()
}

package main

import "go-candidate-backend/cmd/manage/commands"

func main() {
	commands.Execute()
}

package main

import "github.com/theprojectseo/internal/cmd"

func main() {
	cmd.Execute()
}

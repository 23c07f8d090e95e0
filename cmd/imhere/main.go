package main

import "github.com/tunsimp/imhere/cmd/imhere/root"

func main() {
	root.Execute()
}

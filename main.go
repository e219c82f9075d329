package main

import "github.com/KostasZigo/mygit/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/Mohsinsiddi/universe/cmd"

func main() {
	cmd.Execute()
}

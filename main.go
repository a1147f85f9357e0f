package main

import "id-reconciler/cmd"

func main() {
	cmd.Execute()
}

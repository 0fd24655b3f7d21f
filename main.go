package main

import "college-crush-backend/cmd"

func main() {
	cmd.Run()
}

package main

import "mailtui/internal/cli"

func main() {
	cli.Execute()
}

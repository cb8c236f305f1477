package main

import "github.com/dgallion1/xmlview/internal/cli"

func main() {
	cli.Execute()
}

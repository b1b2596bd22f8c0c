package main

import "github.com/prometheus42/gourmet2pdf/cmd"

func main() {
	cmd.Execute()
}

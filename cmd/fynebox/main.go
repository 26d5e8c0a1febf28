package main

import (
	"fynebox/internal/ui"
)

func main() {
	ui.CreateApplication()
}

// Main entry point for the application
package main

import (
	"fynebox/internal/ui"
)

func main() {
	ui.CreateApplication()
}

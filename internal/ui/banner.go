package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the startup banner.
func PrintBanner(version string) {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔════════════════════════════════════════════╗")
	cyan.Print("║  ")
	magenta.Print("HPN LLM ROUTER")
	dim.Print("  │  ")
	yellow.Print("openai · gemini · openrouter")
	cyan.Println(" ║")
	cyan.Print("║  ")
	dim.Printf("%-41s", version)
	cyan.Println(" ║")
	cyan.Println("╚════════════════════════════════════════════╝")
	fmt.Println()
}

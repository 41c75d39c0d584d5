package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"intelhub/config"
	"intelhub/demo/tui"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("server", config.GetEnvOrDefault("API_URL", "http://localhost:8080"), "API server base URL")
	flag.Parse()

	token := os.Getenv("RUN_TOKEN")
	if token == "" {
		fmt.Println("RUN_TOKEN is not set; the server will refuse pipeline triggers")
	}

	program := tea.NewProgram(tui.NewModel(*baseURL, token))
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

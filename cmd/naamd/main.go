package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for NAAMD_MODEL_URL and friends; absence is fine.
	_ = godotenv.Load()
	os.Exit(Execute())
}

package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/blog-backend/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}

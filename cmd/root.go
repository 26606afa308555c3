package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-search",
	Short: "Find which photos in an album contain a given face",
	Long: `face-search maintains a per-album index of face embeddings and answers
"which images contain this face?" queries against it.

The index lives in a single file inside the album directory and is updated
incrementally: already-indexed photos are never reprocessed. Face detection
and embedding are delegated to an external embedding service (EXTRACTOR_URL).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

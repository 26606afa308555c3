package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lakshayg/face-search/internal/ann"
	"github.com/lakshayg/face-search/internal/face"
)

var similarCmd = &cobra.Command{
	Use:   "similar <album> <query-image>",
	Short: "Rank the stored faces nearest to the face in a query image",
	Long: `Build an in-memory HNSW index over all stored face embeddings and print
the closest faces to the one in the query image, with distances.

Unlike 'find', this does not apply the match threshold; it is a ranking
view useful for tuning MATCH_TOLERANCE.

Examples:
  face-search similar ~/Pictures/holiday grandma.jpg --top-k 10`,
	Args: cobra.ExactArgs(2),
	RunE: runSimilar,
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().Int("top-k", 5, "Number of nearest faces to print")
	similarCmd.Flags().Bool("no-progress", false, "Disable the progress bar during sync")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	topK := mustGetInt(cmd, "top-k")
	noProgress := mustGetBool(cmd, "no-progress")
	albumPath, queryPath := args[0], args[1]

	ab, err := openAlbum(albumPath, true)
	if err != nil {
		return err
	}
	defer ab.Close()

	if err := ab.syncAlbum(cmd.Context(), !noProgress); err != nil {
		return err
	}

	imageData, err := os.ReadFile(queryPath)
	if err != nil {
		return fmt.Errorf("reading query image: %w", err)
	}

	vectors, err := ab.extractor().Extract(cmd.Context(), imageData)
	if err != nil {
		return fmt.Errorf("extracting query face: %w", err)
	}
	switch {
	case len(vectors) == 0:
		fmt.Println("No face was found in the query image")
		return nil
	case len(vectors) > 1:
		return fmt.Errorf("%w (%d faces detected)", face.ErrAmbiguousQuery, len(vectors))
	}

	nearest, err := ann.Build(ab.store, face.Metric(ab.cfg.Match.Metric))
	if err != nil {
		return err
	}
	if nearest.Len() == 0 {
		return errors.New("no faces indexed yet")
	}

	neighbors, err := nearest.Search(vectors[0], topK)
	if err != nil {
		return err
	}

	for _, n := range neighbors {
		fmt.Printf("%.4f  %s (face %d)\n", n.Distance, n.Filename, n.Ordinal)
	}
	return nil
}

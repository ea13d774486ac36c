package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-tailor/internal/attach"
	"github.com/jonathan/ats-tailor/internal/config"
	"github.com/jonathan/ats-tailor/internal/store"
	"github.com/jonathan/ats-tailor/internal/types"
)

var (
	attachURL     string
	attachTimeout time.Duration
	attachVisible bool
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach the last generated documents to an application page",
	Long:  "Open the application page in a browser and attach the most recently generated documents into its upload fields.",
	RunE:  runAttach,
}

func init() {
	attachCmd.Flags().StringVar(&attachURL, "url", "", "Application page URL (required)")
	attachCmd.Flags().DurationVar(&attachTimeout, "timeout", 60*time.Second, "Give up after this long")
	attachCmd.Flags().BoolVar(&attachVisible, "visible", false, "Run the browser with a visible window")
	_ = attachCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(attachCmd)
}

func runAttach(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var docs types.GeneratedDocuments
	if err := store.GetJSON(cmd.Context(), st, store.KeyLastDocuments, &docs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no generated documents found; run tailor first")
		}
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), attachTimeout)
	defer cancel()

	headless := cfg.Headless && !attachVisible
	if err := attach.DriveURL(ctx, attachURL, &docs, attach.DriveOptions{
		Headless:     headless,
		FastInterval: cfg.FastInterval,
		SlowInterval: cfg.SlowInterval,
	}); err != nil {
		return err
	}
	fmt.Println("Documents attached")
	return nil
}

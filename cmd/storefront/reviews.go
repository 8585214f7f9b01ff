package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nikolayk812/storefront-demo/internal/page"
	"github.com/nikolayk812/storefront-demo/internal/review"
	"github.com/nikolayk812/storefront-demo/internal/reviewserver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reviewName   string
	reviewText   string
	reviewRating int

	serveAddr string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "List, submit and serve customer reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the reviews from the configured endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			doc := page.New().WithElements(review.SlotList)
			if err := a.controller.Load(ctx, doc); err != nil {
				return fmt.Errorf("controller.Load: %w", err)
			}
			a.printReviews(doc)
			return nil
		})
	},
}

var reviewsSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			doc := page.New().
				WithElements(review.SlotList).
				WithForm(review.SlotForm, map[string]string{
					review.FieldName:   reviewName,
					review.FieldText:   reviewText,
					review.FieldRating: strconv.Itoa(reviewRating),
				})

			if err := a.controller.SubmitReview(ctx, doc); err != nil {
				return err
			}
			a.printReviews(doc)
			return nil
		})
	},
}

var reviewsServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory review endpoint for development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           reviewserver.New(logger).Handler("/reviews"),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("review endpoint listening", zap.String("addr", serveAddr))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}

		return nil
	},
}

func init() {
	reviewsSubmitCmd.Flags().StringVar(&reviewName, "name", "", "reviewer name")
	reviewsSubmitCmd.Flags().StringVar(&reviewText, "text", "", "review text")
	reviewsSubmitCmd.Flags().IntVar(&reviewRating, "rating", 0, "rating from 1 to 5")

	reviewsServeCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	reviewsCmd.AddCommand(reviewsListCmd, reviewsSubmitCmd, reviewsServeCmd)
}

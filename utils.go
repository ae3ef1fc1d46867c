package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/joho/godotenv"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeHTTPClient(timeout time.Duration) maplib.HTTPClient {
	return maplib.NewHTTPClient(&http.Client{}, "cartographer/"+version, timeout)
}

// loadDotenv populates environment with values from .env file in
// a current directory. Variables which are already set stay intact.
func loadDotenv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot load .env file: %w", err)
	}

	return nil
}

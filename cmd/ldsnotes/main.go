package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(&cliEnv{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ ldsnotes: %v\n", err)
		os.Exit(1)
	}
}

// Command taskflow runs every row of a CSV batch through the standard task
// blueprint and prints one result per task id as CSV on stdout.
//
//	taskflow tasks.csv > results.csv
//
// Exit status is 0 when the batch was processed, including batches with
// failed tasks, 2 for unusable input or configuration and 1 for any other
// batch-level failure.
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/attesta/attesta/pkg/core"
)

// ExampleCollect demonstrates how to build a manifest for a directory.
func ExampleCollect() {
	// 1. Configure the run
	cfg := core.Config{
		Root:            ".",
		ExcludePatterns: []string{".git", "node_modules"},
		Metadata: core.FileMetadata{
			License:   "Apache-2.0",
			Copyright: "Copyright 2026 Example Org",
		},
		// keep the manifest itself out of the aggregate
		ExcludeFromCode: []string{"manifest.spdx"},
	}

	// 2. Run the collection
	res, err := core.Collect(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "collection failed: %v\n", err)
		return
	}

	// 3. Consume the manifest and its verification code
	fmt.Printf("collected %d files\n", res.FilesCollected)
	fmt.Printf("verification code: %s\n", res.VerificationCode.Value)
	_ = core.MarshalResult(os.Stdout, res)
}

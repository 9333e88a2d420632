package main

import (
	"fmt"
	"os"

	"github.com/crucial707/file-comparator/cmd/cli/auth"
	"github.com/crucial707/file-comparator/cmd/cli/compare"
	"github.com/crucial707/file-comparator/cmd/cli/root"
)

func main() {
	auth.InitAuth(root.GetRoot())
	compare.InitCompare(root.GetRoot())

	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

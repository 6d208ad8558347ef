//go:build tools

// Package tools pins the developer tooling used by Taskfile.yml.
package tools

import (
	_ "github.com/go-task/task/v3/cmd/task"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)

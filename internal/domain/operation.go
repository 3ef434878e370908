package domain

import (
	"fmt"
	"strings"
)

// Operation is one of the supported arithmetic operations.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations lists the supported operations in display order.
func Operations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// ParseOperation maps a case-insensitive tag to an Operation.
func ParseOperation(tag string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(tag)))
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, tag)
	}
}

// IsOperation reports whether tag names a supported operation.
func IsOperation(tag string) bool {
	_, err := ParseOperation(tag)
	return err == nil
}

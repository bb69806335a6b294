package mathOperations

import (
	"errors"
	"fmt"
)

type Operation string

const (
	Addition    Operation = "addition"
	Subtraction Operation = "subtraction"
	Division    Operation = "division"
)

// Title is the capitalised operation name used in failure messages.
func (operation Operation) Title() string {
	switch operation {
	case Addition:
		return "Addition"
	case Subtraction:
		return "Subtraction"
	case Division:
		return "Division"
	}
	return string(operation)
}

// Features holds the feature toggles of the operation set.
type Features struct {
	Addition    bool `json:"addition"`
	Subtraction bool `json:"subtraction"`
	Division    bool `json:"division"`
}

func (features Features) Enabled(operation Operation) bool {
	switch operation {
	case Addition:
		return features.Addition
	case Subtraction:
		return features.Subtraction
	case Division:
		return features.Division
	}
	return false
}

type FailureKind int

const (
	OperationDisabled FailureKind = iota + 1
	DivisionByZero
)

func (kind FailureKind) String() string {
	switch kind {
	case OperationDisabled:
		return "operation_disabled"
	case DivisionByZero:
		return "division_by_zero"
	}
	return fmt.Sprintf("failure_kind(%d)", int(kind))
}

var (
	ErrOperationDisabled = errors.New("operation disabled")
	ErrDivisionByZero    = errors.New("division by zero")
)

// OperationError is the failure outcome of an operation.
type OperationError struct {
	Kind      FailureKind
	Operation Operation
}

func (e *OperationError) Error() string {
	switch e.Kind {
	case OperationDisabled:
		return e.Operation.Title() + " is disabled"
	case DivisionByZero:
		return "Division by zero"
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Kind)
}

func (e *OperationError) Is(target error) bool {
	switch target {
	case ErrOperationDisabled:
		return e.Kind == OperationDisabled
	case ErrDivisionByZero:
		return e.Kind == DivisionByZero
	}
	return false
}

// MathOperations is the feature gated arithmetic of the service. The disabled
// check of an operation always runs before any check on its arguments.
type MathOperations interface {
	Add(a int64, b int64) (int64, error)
	Subtract(a int64, b int64) (int64, error)
	Divide(a int64, b int64) (float64, error)
	Features() Features
}

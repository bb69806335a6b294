package mathOperations

type mathOperationsImpl struct {
	features Features
}

func New(features Features) MathOperations {
	return &mathOperationsImpl{
		features: features,
	}
}

func (instance *mathOperationsImpl) Add(a int64, b int64) (int64, error) {
	if !instance.features.Addition {
		return 0, disabled(Addition)
	}
	return a + b, nil
}

func (instance *mathOperationsImpl) Subtract(a int64, b int64) (int64, error) {
	if !instance.features.Subtraction {
		return 0, disabled(Subtraction)
	}
	return a - b, nil
}

func (instance *mathOperationsImpl) Divide(a int64, b int64) (float64, error) {
	if !instance.features.Division {
		return 0, disabled(Division)
	}
	if b == 0 {
		return 0, &OperationError{Kind: DivisionByZero, Operation: Division}
	}
	return float64(a) / float64(b), nil
}

func (instance *mathOperationsImpl) Features() Features {
	return instance.features
}

func disabled(operation Operation) error {
	return &OperationError{Kind: OperationDisabled, Operation: operation}
}

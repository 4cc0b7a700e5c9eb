package eval

import "fmt"

// evaluateOperands evaluates both children, left first.
func (o *options) evaluateOperands(expr *Expression) (int32, int32, error) {
	if expr.Left == nil || expr.Right == nil {
		return 0, 0, fmt.Errorf("%w: operator '%s' needs two operands", ErrMalformedExpression, expr.Operator)
	}

	left, err := o.evaluate(expr.Left)
	if err != nil {
		return 0, 0, err
	}

	right, err := o.evaluate(expr.Right)
	if err != nil {
		return 0, 0, err
	}

	return left, right, nil
}

// divide truncates toward zero. math.MinInt32 / -1 wraps to math.MinInt32.
func divide(left, right int32) (int32, error) {
	if right == 0 {
		return 0, fmt.Errorf("%w: %d / 0", ErrDivisionByZero, left)
	}

	return left / right, nil
}

func greaterOrEqualThan(left, right int32) int32 {
	return boolToInt(left >= right)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

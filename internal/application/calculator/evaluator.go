package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/ports"
)

// Evaluator performs one arithmetic operation on two decimal operands and
// records successful calculations.
type Evaluator struct {
	History   ports.HistoryRecorder
	Logger    ports.Logger
	Metrics   ports.Metrics
	Precision int32
}

// Evaluate parses a and b as arbitrary-precision decimals and applies opTag.
// A non-nil error means there is no result; the failure has already been
// logged.
func (e *Evaluator) Evaluate(a, b, opTag string) (decimal.Decimal, error) {
	record, result, err := e.compute(a, b, opTag)
	outcome := outcomeOf(err)
	if e.Metrics != nil {
		e.Metrics.ObserveCalculation(operationLabel(opTag), outcome)
	}
	if err != nil {
		e.Logger.Error("calculation failed", err, map[string]interface{}{
			"a":         a,
			"b":         b,
			"operation": opTag,
		})
		return decimal.Decimal{}, err
	}

	if !record.Deleted && !strings.HasSuffix(record.String(), domain.TombstoneSuffix) && e.History != nil {
		e.History.Append(record)
	}
	e.Logger.Info("calculation performed", map[string]interface{}{"record": record.String()})
	return result, nil
}

func (e *Evaluator) compute(a, b, opTag string) (domain.Record, decimal.Decimal, error) {
	x, err := parseOperand(a)
	if err != nil {
		return domain.Record{}, decimal.Decimal{}, err
	}
	y, err := parseOperand(b)
	if err != nil {
		return domain.Record{}, decimal.Decimal{}, err
	}
	op, err := domain.ParseOperation(opTag)
	if err != nil {
		return domain.Record{}, decimal.Decimal{}, err
	}

	var result decimal.Decimal
	switch op {
	case domain.OpAdd:
		result = x.Add(y)
	case domain.OpSubtract:
		result = x.Sub(y)
	case domain.OpMultiply:
		result = x.Mul(y)
	case domain.OpDivide:
		if y.IsZero() {
			return domain.Record{}, decimal.Decimal{}, fmt.Errorf("%s / %s: %w", a, b, domain.ErrDivisionByZero)
		}
		result = x.DivRound(y, e.divisionPlaces(x, y))
	}

	return domain.Record{
		A:         x.String(),
		B:         y.String(),
		Operation: op,
		Result:    result.String(),
	}, result, nil
}

// divisionPlaces returns the decimal places that keep Precision significant
// digits in x / y, counted from the quotient's leading digit. The integer part
// is never rounded away.
func (e *Evaluator) divisionPlaces(x, y decimal.Decimal) int32 {
	digits := e.Precision
	if digits <= 0 {
		digits = domain.DefaultDivisionPrecision
	}
	if x.IsZero() {
		return 0
	}
	// magnitude of the quotient: its leading digit sits at 10^adjusted
	ax, ay := adjustedExponent(x), adjustedExponent(y)
	adjusted := ax - ay
	if x.Abs().Shift(-ax).LessThan(y.Abs().Shift(-ay)) {
		adjusted--
	}
	if places := digits - 1 - adjusted; places > 0 {
		return places
	}
	return 0
}

// adjustedExponent is the power of ten of d's most significant digit.
func adjustedExponent(d decimal.Decimal) int32 {
	coef := d.Coefficient()
	return int32(len(coef.Abs(coef).String())) - 1 + d.Exponent()
}

func parseOperand(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, s)
	}
	return d, nil
}

// operationLabel bounds the metric label to the known operations.
func operationLabel(tag string) string {
	op, err := domain.ParseOperation(tag)
	if err != nil {
		return domain.OperationLabelInvalid
	}
	return string(op)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return domain.OutcomeOK
	case errors.Is(err, domain.ErrInvalidNumber):
		return domain.OutcomeInvalidNumber
	case errors.Is(err, domain.ErrUnknownOperation):
		return domain.OutcomeUnknownOperation
	case errors.Is(err, domain.ErrDivisionByZero):
		return domain.OutcomeDivisionByZero
	default:
		return domain.OutcomeError
	}
}

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	powPrecision    = 16
	resultPrecision = 10
	// Input and output size limits.
	maxExponent     = 1000
	maxOperandScale = 100
	maxResultDigits = 1000
)

var errResultTooLarge = fmt.Errorf("result exceeds %d digits", maxResultDigits)

type calculatorArgs struct {
	Operation string      `json:"operation" jsonschema:"enum=add,enum=subtract,enum=multiply,enum=divide,enum=power,description=Arithmetic operation to apply as a (op) b"`
	A         json.Number `json:"a" jsonschema:"description=Left operand"`
	B         json.Number `json:"b" jsonschema:"description=Right operand; the exponent for power"`
}

type calculatorTool struct {
	ctx Context
}

func (t *calculatorTool) name() string {
	return "calculator"
}

func (t *calculatorTool) description() string {
	return "Useful for when you need to do math. Applies one arithmetic operation to two decimal numbers; power accepts fractional exponents."
}

func (t *calculatorTool) schema() map[string]any {
	return schemaFor[calculatorArgs]()
}

func (t *calculatorTool) execute(ctx context.Context, argText string) (string, error) {
	var args calculatorArgs
	if err := decodeArgs(argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	result, err := calculate(ctx, args)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	t.ctx.debug("calculator", map[string]any{"operation": args.Operation, "result": result})
	return marshalToolResponse(t.name(), map[string]any{"result": result}, nil)
}

func calculate(ctx context.Context, args calculatorArgs) (string, error) {
	a, err := parseOperand("a", args.A)
	if err != nil {
		return "", err
	}
	b, err := parseOperand("b", args.B)
	if err != nil {
		return "", err
	}

	var out decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(args.Operation)) {
	case "add":
		out = a.Add(b)
	case "subtract":
		out = a.Sub(b)
	case "multiply":
		out = a.Mul(b)
	case "divide":
		if b.IsZero() {
			return "", errors.New("division by zero")
		}
		out = a.DivRound(b, powPrecision)
	case "power":
		if b.Abs().GreaterThan(decimal.NewFromInt(maxExponent)) {
			return "", fmt.Errorf("exponent %s is out of range [-%d, %d]", b, maxExponent, maxExponent)
		}
		if !a.IsZero() && estimateDigits(a)*b.Abs().IntPart() > maxResultDigits {
			return "", errResultTooLarge
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err = a.PowWithPrecision(b, powPrecision)
		if err != nil {
			return "", fmt.Errorf("power: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported operation: %q", args.Operation)
	}
	if estimateDigits(out) > maxResultDigits {
		return "", errResultTooLarge
	}
	return out.Round(resultPrecision).String(), nil
}

func parseOperand(name string, n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid operand %s: %q", name, n)
	}
	if exp := d.Exponent(); exp > maxOperandScale || exp < -maxOperandScale || d.NumDigits() > maxResultDigits {
		return decimal.Decimal{}, fmt.Errorf("operand %s is out of range: %q", name, n)
	}
	return d, nil
}

// estimateDigits is the number of digits in the integer part of d, at least 1.
func estimateDigits(d decimal.Decimal) int64 {
	digits := int64(d.NumDigits()) + int64(d.Exponent())
	if digits < 1 {
		return 1
	}
	return digits
}

package service

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

var ErrInvalidExpression = errors.New("invalid expression")

// CalcService evaluates plain arithmetic expressions for the calculator
// screen. It shares nothing with the game packages.
type CalcService interface {
	Evaluate(expression string) (string, error)
}

type calcService struct{}

func NewCalcService() CalcService {
	return &calcService{}
}

// Evaluate runs the expression through an embedded Lua state. Only digits,
// decimal points, the operators + - * / % ^ and parentheses are allowed,
// which keeps the state a pure calculator.
func (that *calcService) Evaluate(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidExpression)
	}

	if !isArithmetic(expression) {
		return "", fmt.Errorf("%w: unsupported characters in %q", ErrInvalidExpression, expression)
	}

	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer state.Close()

	// The parentheses keep "--" inside the expression from opening a Lua
	// comment and truncating the chunk.
	if err := state.DoString("return (" + expression + ")"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidExpression, expression)
	}

	number, ok := state.Get(-1).(lua.LNumber)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidExpression, expression)
	}

	result := float64(number)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return "", fmt.Errorf("%w: %q has no finite result", ErrInvalidExpression, expression)
	}

	return strconv.FormatFloat(result, 'f', -1, 64), nil
}

func isArithmetic(expression string) bool {
	for _, symbol := range expression {
		switch {
		case symbol >= '0' && symbol <= '9':
		case strings.ContainsRune("+-*/%^(). ", symbol):
		default:
			return false
		}
	}

	return true
}

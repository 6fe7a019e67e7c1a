package validator

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	integerRegex = regexp.MustCompile(`^[+-]?\d+$`)
	digitsRegex  = regexp.MustCompile(`^\d+$`)
)

func isNumeric(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func isInteger(s string) bool {
	return integerRegex.MatchString(s)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidParameters, s)
	}
	return f, nil
}

// size measures the field as a number, a file in kilobytes, an element count
// or a character count.
func (in checkInput) size() (float64, bool) {
	switch in.kind {
	case "numeric":
		f, err := strconv.ParseFloat(strings.TrimSpace(in.value()), 64)
		return f, err == nil
	case "file":
		if len(in.field.files) == 0 {
			return 0, false
		}
		return float64(in.field.files[0].Size) / 1024, true
	case "array":
		return float64(len(in.field.values)), true
	default:
		return float64(utf8.RuneCountInString(in.value())), true
	}
}

func checkSize(cmp func(size, n float64) bool) checkFunc {
	return func(_ context.Context, _ *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		n, err := parseNumber(in.param(0))
		if err != nil {
			return false, err
		}
		size, ok := in.size()
		return ok && cmp(size, n), nil
	}
}

func checkBetween(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 2); err != nil {
		return false, err
	}
	lo, err := parseNumber(in.param(0))
	if err != nil {
		return false, err
	}
	hi, err := parseNumber(in.param(1))
	if err != nil {
		return false, err
	}
	size, ok := in.size()
	return ok && size >= lo && size <= hi, nil
}

// checkCompare backs gt, gte, lt and lte. The parameter is another attribute
// when the form declares one, otherwise a literal size.
func checkCompare(cmp func(a, b float64) bool) checkFunc {
	return func(_ context.Context, v *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		size, ok := in.size()
		if !ok {
			return false, nil
		}
		if v.hasAttribute(in.param(0)) {
			other := v.lookup(in.param(0))
			otherIn := checkInput{field: other, kind: in.kind}
			otherSize, ok := otherIn.size()
			return ok && cmp(size, otherSize), nil
		}
		n, err := parseNumber(in.param(0))
		if err != nil {
			return false, err
		}
		return cmp(size, n), nil
	}
}

func checkDigits(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	n, err := strconv.Atoi(in.param(0))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidParameters, in.param(0))
	}
	val := strings.TrimSpace(in.value())
	return digitsRegex.MatchString(val) && len(val) == n, nil
}

func checkDigitsBetween(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 2); err != nil {
		return false, err
	}
	lo, err1 := strconv.Atoi(in.param(0))
	hi, err2 := strconv.Atoi(in.param(1))
	if err1 != nil || err2 != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidParameters, in.params)
	}
	val := strings.TrimSpace(in.value())
	return digitsRegex.MatchString(val) && len(val) >= lo && len(val) <= hi, nil
}

// checkDecimal implements decimal:min[,max] on the count of decimal places.
func checkDecimal(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	lo, err := strconv.Atoi(in.param(0))
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidParameters, in.param(0))
	}
	hi := lo
	if len(in.params) > 1 {
		if hi, err = strconv.Atoi(in.param(1)); err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidParameters, in.param(1))
		}
	}
	val := strings.TrimSpace(in.value())
	if !isNumeric(val) {
		return false, nil
	}
	places := 0
	if _, frac, ok := strings.Cut(val, "."); ok {
		places = len(frac)
	}
	return places >= lo && places <= hi, nil
}

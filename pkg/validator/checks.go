package validator

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

type checkInput struct {
	attribute string
	field     field
	params    []string
	kind      string
	rules     []parsedRule
}

func (in checkInput) value() string {
	return in.field.value()
}

func (in checkInput) param(i int) string {
	if i < len(in.params) {
		return in.params[i]
	}
	return ""
}

type checkFunc func(ctx context.Context, v *Validator, in checkInput) (bool, error)

// checks is the built-in rule table. Rules without an entry and without an
// extension always pass, so unknown rules do not break validation.
var checks map[string]checkFunc

func init() {
	checks = map[string]checkFunc{
		// presence
		"required":             checkRequired,
		"required_if":          checkRequiredIf,
		"required_unless":      checkRequiredUnless,
		"required_with":        checkRequiredWith(false, false),
		"required_with_all":    checkRequiredWith(true, false),
		"required_without":     checkRequiredWith(false, true),
		"required_without_all": checkRequiredWith(true, true),
		"filled":               checkFilled,
		"present":              checkPresent,
		"accepted":             simple(isAccepted),
		"accepted_if":          checkAcceptedIf,
		"declined":             simple(isDeclined),

		// strings and formats
		"string":      simple(func(string) bool { return true }),
		"alpha":       simple(alphaRegex.MatchString),
		"alpha_dash":  simple(alphaDashRegex.MatchString),
		"alpha_num":   simple(alphaNumRegex.MatchString),
		"lowercase":   simple(func(s string) bool { return s == strings.ToLower(s) }),
		"uppercase":   simple(func(s string) bool { return s == strings.ToUpper(s) }),
		"starts_with": checkStartsWith,
		"ends_with":   checkEndsWith,
		"regex":       checkRegex(true),
		"not_regex":   checkRegex(false),
		"email":       simple(isEmail),
		"url":         simple(isURL),
		"active_url":  checkActiveURL,
		"ip":          simple(isIP),
		"ipv4":        simple(isIPv4),
		"ipv6":        simple(isIPv6),
		"uuid":        simple(isUUID),
		"json":        simple(isJSON),
		"timezone":    simple(isTimezone),
		"boolean":     simple(isBoolean),
		"in":          checkIn(true),
		"not_in":      checkIn(false),
		"array":       checkArray,
		"distinct":    checkDistinct,

		// fields
		"confirmed": checkConfirmed,
		"same":      checkSame(true),
		"different": checkSame(false),

		// numbers and sizes
		"numeric":        simple(isNumeric),
		"integer":        simple(isInteger),
		"decimal":        checkDecimal,
		"digits":         checkDigits,
		"digits_between": checkDigitsBetween,
		"min":            checkSize(func(size, n float64) bool { return size >= n }),
		"max":            checkSize(func(size, n float64) bool { return size <= n }),
		"size":           checkSize(func(size, n float64) bool { return size == n }),
		"between":        checkBetween,
		"gt":             checkCompare(func(a, b float64) bool { return a > b }),
		"gte":            checkCompare(func(a, b float64) bool { return a >= b }),
		"lt":             checkCompare(func(a, b float64) bool { return a < b }),
		"lte":            checkCompare(func(a, b float64) bool { return a <= b }),

		// dates
		"date":            simple(isDate),
		"date_format":     checkDateFormat,
		"after":           checkDate(func(cmp int) bool { return cmp > 0 }),
		"after_or_equal":  checkDate(func(cmp int) bool { return cmp >= 0 }),
		"before":          checkDate(func(cmp int) bool { return cmp < 0 }),
		"before_or_equal": checkDate(func(cmp int) bool { return cmp <= 0 }),

		// files
		"file":      checkFile,
		"image":     checkImage,
		"mimes":     checkMimes,
		"mimetypes": checkMimeTypes,

		// database
		"unique": checkUnique,
		"exists": checkExists,
	}
}

func (v *Validator) check(ctx context.Context, in checkInput, rule string) (bool, error) {
	if ext, ok := v.extensions[rule]; ok {
		return ext.check(ctx, in.field.name, in.value(), in.params, v.data)
	}
	fn, ok := checks[rule]
	if !ok {
		v.log.DebugContext(ctx, "no check registered for rule, skipping", "rule", rule)
		return true, nil
	}
	return fn(ctx, v, in)
}

// simple adapts a predicate over every value of the field.
func simple(pred func(string) bool) checkFunc {
	return func(_ context.Context, _ *Validator, in checkInput) (bool, error) {
		if len(in.field.values) == 0 {
			return pred(""), nil
		}
		for _, val := range in.field.values {
			if !pred(strings.TrimSpace(val)) {
				return false, nil
			}
		}
		return true, nil
	}
}

func needParams(in checkInput, n int) error {
	if len(in.params) < n {
		return fmt.Errorf("%w: want at least %d, got %d", ErrInvalidParameters, n, len(in.params))
	}
	return nil
}

func checkRequired(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	return !in.field.empty(), nil
}

func checkFilled(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	return !in.field.present || !in.field.empty(), nil
}

func checkPresent(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	return in.field.present, nil
}

func checkRequiredIf(_ context.Context, v *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 2); err != nil {
		return false, err
	}
	other := v.lookup(in.param(0)).value()
	if slices.Contains(in.params[1:], other) {
		return !in.field.empty(), nil
	}
	return true, nil
}

func checkRequiredUnless(_ context.Context, v *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 2); err != nil {
		return false, err
	}
	other := v.lookup(in.param(0)).value()
	if !slices.Contains(in.params[1:], other) {
		return !in.field.empty(), nil
	}
	return true, nil
}

// checkRequiredWith covers the four required_with* rules. all selects
// "every other field" instead of "any", without inverts presence.
func checkRequiredWith(all, without bool) checkFunc {
	return func(_ context.Context, v *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		matched := 0
		for _, other := range in.params {
			filled := !v.lookup(other).empty()
			if filled != without {
				matched++
			}
		}
		triggered := matched > 0
		if all {
			triggered = matched == len(in.params)
		}
		if triggered {
			return !in.field.empty(), nil
		}
		return true, nil
	}
}

func checkAcceptedIf(_ context.Context, v *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 2); err != nil {
		return false, err
	}
	if slices.Contains(in.params[1:], v.lookup(in.param(0)).value()) {
		return isAccepted(in.value()), nil
	}
	return true, nil
}

func checkConfirmed(_ context.Context, v *Validator, in checkInput) (bool, error) {
	return v.lookup(in.field.name+"_confirmation").value() == in.value(), nil
}

func checkSame(equal bool) checkFunc {
	return func(_ context.Context, v *Validator, in checkInput) (bool, error) {
		if err := needParams(in, 1); err != nil {
			return false, err
		}
		same := v.lookup(in.param(0)).value() == in.value()
		return same == equal, nil
	}
}

func checkIn(want bool) checkFunc {
	return func(_ context.Context, _ *Validator, in checkInput) (bool, error) {
		for _, val := range in.field.values {
			if slices.Contains(in.params, val) != want {
				return false, nil
			}
		}
		return true, nil
	}
}

func checkArray(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	return in.field.multi || len(in.field.values) != 1, nil
}

func checkDistinct(_ context.Context, v *Validator, in checkInput) (bool, error) {
	parent, ok := strings.CutSuffix(in.attribute, ".*")
	values := in.field.values
	if ok {
		values = v.lookup(parent).values
	}
	seen := make(map[string]int, len(values))
	for _, val := range values {
		seen[val]++
	}
	if ok {
		return seen[in.value()] <= 1, nil
	}
	return len(seen) == len(values), nil
}

package validator

import (
	"context"
	"errors"
	"strings"
)

// PresenceVerifier counts stored records for the unique and exists rules.
// excludeID and idColumn are empty unless unique carries an ignore clause.
type PresenceVerifier interface {
	Count(ctx context.Context, table, column, value, excludeID, idColumn string) (int64, error)
}

// PresenceVerifierFunc adapts a function to PresenceVerifier.
type PresenceVerifierFunc func(ctx context.Context, table, column, value, excludeID, idColumn string) (int64, error)

func (f PresenceVerifierFunc) Count(ctx context.Context, table, column, value, excludeID, idColumn string) (int64, error) {
	return f(ctx, table, column, value, excludeID, idColumn)
}

func nullable(s string) string {
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// column defaults to the attribute, without any wildcard suffix.
func presenceColumn(in checkInput) string {
	if c := nullable(in.param(1)); c != "" {
		return c
	}
	return strings.TrimSuffix(in.attribute, ".*")
}

// checkUnique implements unique:table[,column[,except[,idColumn]]].
func checkUnique(ctx context.Context, v *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	if v.verifier == nil {
		return false, ErrNoPresenceVerifier
	}
	except := nullable(in.param(2))
	idColumn := nullable(in.param(3))
	if except != "" && idColumn == "" {
		idColumn = "id"
	}
	n, err := v.verifier.Count(ctx, in.param(0), presenceColumn(in), in.value(), except, idColumn)
	if err != nil {
		return false, errors.Join(ErrPresenceCheckFailed, err)
	}
	return n == 0, nil
}

// checkExists implements exists:table[,column]; every value must exist.
func checkExists(ctx context.Context, v *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	if v.verifier == nil {
		return false, ErrNoPresenceVerifier
	}
	for _, val := range in.field.values {
		n, err := v.verifier.Count(ctx, in.param(0), presenceColumn(in), val, "", "")
		if err != nil {
			return false, errors.Join(ErrPresenceCheckFailed, err)
		}
		if n == 0 {
			return false, nil
		}
	}
	return true, nil
}

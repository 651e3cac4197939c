/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package filter

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// Predicate is a composable boolean condition over record fields. Build one
// from the primitive constructors and combine with And/Or:
//
//	p := filter.Equal("Status", "pending").And(filter.GreaterThan("Total", 100))
//
// The zero Predicate matches everything (no filter applied).
type Predicate struct {
	cond expression.ConditionBuilder
}

// Equal matches records whose field equals the given value.
func Equal(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).Equal(expression.Value(value))}
}

// NotEqual matches records whose field differs from the given value.
func NotEqual(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).NotEqual(expression.Value(value))}
}

// GreaterThan matches records whose field is strictly greater than the value.
func GreaterThan(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).GreaterThan(expression.Value(value))}
}

// GreaterOrEqual matches records whose field is greater than or equal to the value.
func GreaterOrEqual(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).GreaterThanEqual(expression.Value(value))}
}

// LessThan matches records whose field is strictly less than the value.
func LessThan(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).LessThan(expression.Value(value))}
}

// LessOrEqual matches records whose field is less than or equal to the value.
func LessOrEqual(field string, value any) Predicate {
	return Predicate{cond: expression.Name(field).LessThanEqual(expression.Value(value))}
}

// BeginsWith matches records whose string field starts with the given prefix.
func BeginsWith(field, prefix string) Predicate {
	return Predicate{cond: expression.Name(field).BeginsWith(prefix)}
}

// Exists matches records that carry the given field.
func Exists(field string) Predicate {
	return Predicate{cond: expression.Name(field).AttributeExists()}
}

// And combines two predicates with logical AND.
func (p Predicate) And(q Predicate) Predicate {
	if !p.IsSet() {
		return q
	}
	if !q.IsSet() {
		return p
	}
	return Predicate{cond: p.cond.And(q.cond)}
}

// Or combines two predicates with logical OR.
func (p Predicate) Or(q Predicate) Predicate {
	if !p.IsSet() {
		return q
	}
	if !q.IsSet() {
		return p
	}
	return Predicate{cond: p.cond.Or(q.cond)}
}

// IsSet reports whether the predicate carries a condition.
func (p Predicate) IsSet() bool {
	return p.cond.IsSet()
}

// Condition returns the store-native condition for this predicate.
func (p Predicate) Condition() expression.ConditionBuilder {
	return p.cond
}

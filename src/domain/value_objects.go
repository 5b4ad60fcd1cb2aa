package domain

import (
	"errors"
	"fmt"
	"strings"

	"propertylisting/src/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrListingNotFound = errors.New("listing not found")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidToken = errors.New("invalid or expired token")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// FieldViolation descreve uma única regra de entrada violada.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrega todas as violações de uma requisição, não só a primeira.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

// HasField informa se algum campo específico foi rejeitado.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// ############################################################
// ################ FILTRO DE LISTAGEM ########################
// ############################################################

type FilterField string

const (
	FieldCity  FilterField = "city"
	FieldPrice FilterField = "price"
	FieldType  FilterField = "type"
)

type FilterOperator string

const (
	OpContainsFold   FilterOperator = "contains_fold"
	OpGreaterOrEqual FilterOperator = ">="
	OpLessOrEqual    FilterOperator = "<="
	OpEqual          FilterOperator = "="
)

// Condition é uma cláusula de comparação independente de qualquer linguagem de query.
type Condition struct {
	Field    FilterField
	Operator FilterOperator
	Value    interface{}
}

// Filter é a conjunção (AND) das cláusulas presentes. Um Filter vazio aceita tudo.
type Filter struct {
	Conditions []Condition
}

func (f Filter) IsEmpty() bool {
	return len(f.Conditions) == 0
}

// Matches avalia o filtro em memória sobre um listing.
func (f Filter) Matches(listing entities.Listing) bool {
	for _, c := range f.Conditions {
		if !c.Matches(listing) {
			return false
		}
	}
	return true
}

func (c Condition) Matches(listing entities.Listing) bool {
	switch c.Field {
	case FieldCity:
		value, ok := c.Value.(string)
		if !ok || c.Operator != OpContainsFold {
			return false
		}
		return strings.Contains(strings.ToLower(listing.City), strings.ToLower(value))

	case FieldPrice:
		value, ok := c.Value.(decimal.Decimal)
		if !ok {
			return false
		}
		switch c.Operator {
		case OpGreaterOrEqual:
			return listing.Price.GreaterThanOrEqual(value)
		case OpLessOrEqual:
			return listing.Price.LessThanOrEqual(value)
		}
		return false

	case FieldType:
		value, ok := c.Value.(entities.ListingType)
		if !ok || c.Operator != OpEqual {
			return false
		}
		return listing.Type == value
	}

	return false
}

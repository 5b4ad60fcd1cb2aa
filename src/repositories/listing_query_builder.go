package repositories

import (
	"fmt"
	"strings"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"

	"github.com/shopspring/decimal"
)

// colunas aceitas por campo de filtro; qualquer outro campo é rejeitado.
var filterColumns = map[domain.FilterField]string{
	domain.FieldCity:  "city",
	domain.FieldPrice: "price",
	domain.FieldType:  "type",
}

type listingQueryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newListingQueryBuilder() *listingQueryBuilder {
	return &listingQueryBuilder{
		argID: 1,
		args:  make([]interface{}, 0),
	}
}

func (qb *listingQueryBuilder) addCondition(condition string, column string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, column, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// escapeLike neutraliza os curingas do LIKE para que o valor seja buscado literalmente.
func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func (qb *listingQueryBuilder) apply(condition domain.Condition) error {
	column, ok := filterColumns[condition.Field]
	if !ok {
		return fmt.Errorf("unsupported filter field %q", condition.Field)
	}

	switch condition.Operator {
	case domain.OpContainsFold:
		value, ok := condition.Value.(string)
		if !ok {
			return fmt.Errorf("filter %s expects a string, got %T", condition.Field, condition.Value)
		}
		qb.addCondition("%s ILIKE $%d", column, "%"+escapeLike(value)+"%")

	case domain.OpGreaterOrEqual, domain.OpLessOrEqual:
		value, ok := condition.Value.(decimal.Decimal)
		if !ok {
			return fmt.Errorf("filter %s expects a decimal, got %T", condition.Field, condition.Value)
		}
		qb.addCondition("%s "+string(condition.Operator)+" $%d", column, value.String())

	case domain.OpEqual:
		value, ok := condition.Value.(entities.ListingType)
		if !ok {
			return fmt.Errorf("filter %s expects a listing type, got %T", condition.Field, condition.Value)
		}
		qb.addCondition("%s = $%d", column, string(value))

	default:
		return fmt.Errorf("unsupported filter operator %q", condition.Operator)
	}

	return nil
}

// build devolve a cláusula WHERE (vazia quando não há filtros) e seus argumentos.
func (qb *listingQueryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

func buildListingWhere(filter domain.Filter) (string, []interface{}, error) {
	qb := newListingQueryBuilder()
	for _, condition := range filter.Conditions {
		if err := qb.apply(condition); err != nil {
			return "", nil, err
		}
	}
	where, args := qb.build()
	return where, args, nil
}

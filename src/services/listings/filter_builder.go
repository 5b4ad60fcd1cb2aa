package listings

import (
	"strings"

	"propertylisting/src/domain"
	"propertylisting/src/domain/entities"
)

// BuildFilter converte os parâmetros opcionais em uma conjunção de cláusulas.
// Parâmetros ausentes, em branco ou com tipo desconhecido não geram cláusula.
func BuildFilter(query domain.ListingQuery) domain.Filter {
	conditions := make([]domain.Condition, 0, 4)

	if query.City != nil {
		// o valor vai sem trim; espaços só servem para detectar o "em branco"
		if strings.TrimSpace(*query.City) != "" {
			conditions = append(conditions, domain.Condition{
				Field:    domain.FieldCity,
				Operator: domain.OpContainsFold,
				Value:    *query.City,
			})
		}
	}

	if query.MinPrice != nil {
		conditions = append(conditions, domain.Condition{
			Field:    domain.FieldPrice,
			Operator: domain.OpGreaterOrEqual,
			Value:    *query.MinPrice,
		})
	}

	if query.MaxPrice != nil {
		conditions = append(conditions, domain.Condition{
			Field:    domain.FieldPrice,
			Operator: domain.OpLessOrEqual,
			Value:    *query.MaxPrice,
		})
	}

	if query.Type != nil {
		if listingType, ok := entities.ParseListingType(*query.Type); ok {
			conditions = append(conditions, domain.Condition{
				Field:    domain.FieldType,
				Operator: domain.OpEqual,
				Value:    listingType,
			})
		}
	}

	return domain.Filter{Conditions: conditions}
}

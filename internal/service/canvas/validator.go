package canvas

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pageforge/internal/config"
	"pageforge/internal/domain"
	models "pageforge/internal/domain/models/canvas"
	canvasSvc "pageforge/internal/domain/services/canvas"
)

// pageValidator checks a page before persistence: metadata constraints
// plus structural checks over the component forest.
type pageValidator struct{}

// NewPageValidator creates the default page validator.
func NewPageValidator() canvasSvc.PageValidator {
	return &pageValidator{}
}

func (v *pageValidator) Validate(_ context.Context, page *models.Page) []domain.Violation {
	var violations []domain.Violation

	err := validation.ValidateStruct(page,
		validation.Field(&page.Title, validation.Required, validation.Length(1, config.MaxPageTitleLength)),
		validation.Field(&page.Status, validation.Required, validation.By(func(value interface{}) error {
			if s, ok := value.(models.PublishStatus); !ok || !s.Valid() {
				return fmt.Errorf("must be draft or published")
			}
			return nil
		})),
	)
	if err != nil {
		if fieldErrs, ok := err.(validation.Errors); ok {
			for field, fieldErr := range fieldErrs {
				violations = append(violations, domain.Violation{Path: field, Message: fieldErr.Error()})
			}
		} else {
			violations = append(violations, domain.Violation{Path: "page", Message: err.Error()})
		}
	}

	seen := make(map[string]string)
	violations = append(violations, checkComponents("components", page.Components, seen)...)

	return violations
}

// checkComponents walks the forest verifying each component has an id and
// a type, and that ids are unique across the whole page.
func checkComponents(path string, components []models.Component, seen map[string]string) []domain.Violation {
	var violations []domain.Violation
	for i, c := range components {
		p := fmt.Sprintf("%s[%d]", path, i)
		if c.ID == "" {
			violations = append(violations, domain.Violation{Path: p, Message: "component id is required"})
		} else if prior, dup := seen[c.ID]; dup {
			violations = append(violations, domain.Violation{Path: p, Message: fmt.Sprintf("duplicate component id, first seen at %s", prior)})
		} else {
			seen[c.ID] = p
		}
		if c.Type == "" {
			violations = append(violations, domain.Violation{Path: p, Message: "component type is required"})
		}
		violations = append(violations, checkComponents(p+".children", c.Children, seen)...)
	}
	return violations
}

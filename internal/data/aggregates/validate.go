package aggregates

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// normalizeID trims a caller-supplied learner or creator id. Repos store ids in this form.
func normalizeID(id string) string {
	return strings.TrimSpace(id)
}

// validateInput checks `validate` struct tags on aggregate inputs.
func validateInput(in any) error {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ValidationError(err.Error())
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s failed %s", trimNamespace(fe.Namespace()), fe.Tag()))
	}
	sort.Strings(parts)
	return ValidationError(strings.Join(parts, "; "))
}

func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

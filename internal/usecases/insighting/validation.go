package insighting

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/ads-insights-api/internal/domain"
	"github.com/vfg2006/ads-insights-api/pkg/apiErrors"
	"github.com/vfg2006/ads-insights-api/pkg/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Erros usam o nome do campo no JSON
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return utils.IsISODate(fl.Field().String())
	})
}

// validateRequest valida a consulta antes de qualquer acesso ao banco ou ao Meta
func validateRequest(request *domain.InsightsRequest) error {
	if request == nil {
		return domain.NewIntegrationError(domain.ErrMissingRequiredParameter, apiErrors.ErrMissingRequiredData, "Corpo da requisição é obrigatório")
	}

	if err := validate.Struct(request); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
			return domain.NewIntegrationError(domain.ErrMissingRequiredParameter, apiErrors.ErrInvalidRequest, err.Error())
		}

		return fieldError(validationErrors[0])
	}

	if request.StartDate > request.EndDate {
		return domain.NewIntegrationError(domain.ErrInvalidDateRange, apiErrors.ErrInvalidRequest, "start_date não pode ser posterior a end_date")
	}

	return nil
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return domain.NewIntegrationError(domain.ErrMissingRequiredParameter, apiErrors.ErrMissingRequiredData,
			fmt.Sprintf("%s é obrigatório", fe.Field()))
	case "isodate":
		return domain.NewIntegrationError(domain.ErrInvalidDateFormat, apiErrors.ErrInvalidFormat,
			fmt.Sprintf("%s deve estar no formato YYYY-MM-DD", fe.Field()))
	case "oneof":
		return domain.NewIntegrationError(domain.ErrInvalidLevel, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param()))
	default:
		return domain.NewIntegrationError(domain.ErrMissingRequiredParameter, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("%s inválido", fe.Field()))
	}
}

package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida; es segura para uso concurrente.
var validate = validator.New()

// validateStruct valida un DTO con sus tags `validate` y devuelve un mensaje
// legible con los campos que fallaron, o "" si todo está bien.
func validateStruct(in interface{}) string {
	err := validate.Struct(in)
	if err == nil {
		return ""
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return "campos inválidos: " + strings.Join(fields, ", ")
}

// Package inventory contiene la lógica de dominio pura del motor de
// movimientos: generación de referencias y decisiones que no tocan
// infraestructura.
package inventory

import (
	"fmt"
	"time"
)

// referenceLayout produce la parte de fecha AAAADDMM: año, DÍA y luego mes.
// El orden día-antes-de-mes viene del formato histórico de las referencias
// ya emitidas y debe preservarse tal cual.
const referenceLayout = "20060201"

// ReferenceCandidate genera un candidato de número de referencia con el
// formato INV-<AAAADDMM>-<4 dígitos>, donde el sufijo son los últimos
// cuatro dígitos del timestamp en milisegundos.
func ReferenceCandidate(now time.Time) string {
	return fmt.Sprintf("INV-%s-%04d", now.Format(referenceLayout), now.UnixMilli()%10000)
}

// ReferenceChecker es el contrato mínimo que necesita el generador para
// verificar si una referencia ya fue emitida.
type ReferenceChecker interface {
	ExistsByReference(reference string) (bool, error)
}

// ReferenceGenerator produce referencias probabilísticamente únicas para
// movimientos. Es un ayudante de mejor esfuerzo: la constraint única de
// reference_number en el almacén es el guardián definitivo.
type ReferenceGenerator struct {
	movements ReferenceChecker
	now       func() time.Time
}

// NewReferenceGenerator construye el generador con el reloj del sistema.
func NewReferenceGenerator(movements ReferenceChecker) *ReferenceGenerator {
	return &ReferenceGenerator{movements: movements, now: time.Now}
}

// Generate devuelve un candidato verificado una sola vez contra las
// referencias existentes. Si colisiona, re-muestrea el sufijo con un
// timestamp fresco y acepta el nuevo valor sin volver a verificar:
// se tolera una probabilidad residual de colisión en lugar de iterar
// hasta garantizar unicidad.
func (g *ReferenceGenerator) Generate() (string, error) {
	candidate := ReferenceCandidate(g.now())
	exists, err := g.movements.ExistsByReference(candidate)
	if err != nil {
		return "", fmt.Errorf("verificar referencia: %w", err)
	}
	if !exists {
		return candidate, nil
	}
	return ReferenceCandidate(g.now()), nil
}

package inventory

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// ReferenceCandidate — formato
// ──────────────────────────────────────────────────────────────────────────────

// El formato es INV-<AAAADDMM>-<4 dígitos>: año, DÍA y luego mes.
// Epoch 1700000001234 ms = 2023-11-14T22:13:21.234Z → fecha "20231411".
func TestReferenceCandidate_FormatoDiaAntesDeMes(t *testing.T) {
	now := time.UnixMilli(1700000001234).UTC()
	ref := ReferenceCandidate(now)
	assert.Equal(t, "INV-20231411-1234", ref,
		"la parte de fecha debe ser año-día-mes y el sufijo los últimos 4 dígitos del timestamp en ms")
}

// El sufijo siempre va con padding a 4 dígitos.
func TestReferenceCandidate_SufijoConPadding(t *testing.T) {
	// 1700000000007 ms → sufijo 0007
	now := time.UnixMilli(1700000000007).UTC()
	ref := ReferenceCandidate(now)
	assert.Equal(t, "INV-20231411-0007", ref)
}

func TestReferenceCandidate_PatronGeneral(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{8}-\d{4}$`)
	ref := ReferenceCandidate(time.Now())
	assert.Regexp(t, pattern, ref)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReferenceGenerator — verificación y re-muestreo
// ──────────────────────────────────────────────────────────────────────────────

type fakeChecker struct {
	existing map[string]bool
	err      error
	calls    int
}

func (f *fakeChecker) ExistsByReference(reference string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.existing[reference], nil
}

// clockSequence devuelve instantes consecutivos en cada llamada.
func clockSequence(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestGenerate_SinColision_DevuelvePrimerCandidato(t *testing.T) {
	checker := &fakeChecker{existing: map[string]bool{}}
	gen := &ReferenceGenerator{
		movements: checker,
		now:       clockSequence(time.UnixMilli(1700000001234).UTC()),
	}

	ref, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "INV-20231411-1234", ref)
	assert.Equal(t, 1, checker.calls, "sin colisión se verifica una sola vez")
}

// Ante colisión se re-muestrea con timestamp fresco y se acepta el nuevo
// candidato sin volver a verificar.
func TestGenerate_ConColision_RemuestreaSinReverificar(t *testing.T) {
	checker := &fakeChecker{existing: map[string]bool{"INV-20231411-1234": true}}
	gen := &ReferenceGenerator{
		movements: checker,
		now: clockSequence(
			time.UnixMilli(1700000001234).UTC(),
			time.UnixMilli(1700000005678).UTC(),
		),
	}

	ref, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "INV-20231411-5678", ref)
	assert.Equal(t, 1, checker.calls, "el segundo candidato se acepta sin re-verificar")
}

func TestGenerate_ErrorDelChecker_Propaga(t *testing.T) {
	boom := errors.New("db caída")
	gen := &ReferenceGenerator{
		movements: &fakeChecker{err: boom},
		now:       time.Now,
	}

	_, err := gen.Generate()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

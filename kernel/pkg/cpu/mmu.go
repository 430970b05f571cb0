package cpu

import (
	"errors"
	"fmt"
)

var ErrViolacionDeSegmento = errors.New("violación de segmento")

// MMU traduce direcciones lógicas con el par base/límite del proceso en ejecución.
type MMU struct {
	Base   int
	Limite int
}

func (m *MMU) Traducir(dirLogica int) (int, error) {
	if dirLogica < 0 || dirLogica > m.Limite {
		return 0, fmt.Errorf("%w: dirección %d fuera de [0, %d]", ErrViolacionDeSegmento, dirLogica, m.Limite)
	}
	return m.Base + dirLogica, nil
}

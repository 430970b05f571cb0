package uniqueid

// Secuencia entrega ids crecientes a partir de 1. No tiene lock: quien la use
// tiene que pedir ids desde una sola goroutine.
type Secuencia struct {
	ultimo int
}

func Nueva() *Secuencia {
	return &Secuencia{}
}

func (s *Secuencia) Siguiente() int {
	s.ultimo++
	return s.ultimo
}

package search

import "compras-service/internal/model"

// Seleccion es el estado de los checkboxes del listado, por id de compra.
// Es un valor explícito que atraviesa los límites de función; el motor de
// búsqueda no guarda estado ambiente.
type Seleccion map[string]bool

// MarcarTodas pone todas las compras mostradas en el mismo estado de
// selección.
func MarcarTodas(sel Seleccion, compras []model.Compra, marcada bool) {
	for _, compra := range compras {
		sel[compra.IDDoc] = marcada
	}
}

// HaySeleccionadas informa si al menos una compra quedó marcada.
func HaySeleccionadas(sel Seleccion) bool {
	for _, marcada := range sel {
		if marcada {
			return true
		}
	}
	return false
}

// IDsSeleccionados devuelve los ids marcados, en el orden del listado
// mostrado. El orden importa: el cambio de estados en lote se aplica
// secuencialmente y se corta en la primera falla.
func IDsSeleccionados(sel Seleccion, compras []model.Compra) []string {
	ids := make([]string, 0, len(compras))
	for _, compra := range compras {
		if sel[compra.IDDoc] {
			ids = append(ids, compra.IDDoc)
		}
	}
	return ids
}

// Ampliacion es el estado expandido/colapsado de cada fila del listado,
// independiente de la selección. Se recalcula después de cada búsqueda.
type Ampliacion map[string]bool

// NuevaAmpliacion inicializa el estado de ampliación para el resultado de
// una búsqueda: todas las filas colapsadas.
func NuevaAmpliacion(compras []model.Compra) Ampliacion {
	amp := make(Ampliacion, len(compras))
	for _, compra := range compras {
		amp[compra.IDDoc] = false
	}
	return amp
}

// Alternar invierte el estado de una fila.
func (a Ampliacion) Alternar(idDoc string) {
	a[idDoc] = !a[idDoc]
}

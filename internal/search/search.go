// Package search clasifica el texto libre del buscador de compras en un
// criterio de búsqueda, aplica los filtros secundarios y ordena el resultado.
// Todas las funciones de este archivo son puras: no tocan red ni estado
// global, lo que las hace testeables sin colaboradores.
package search

import (
	"sort"
	"strings"

	"compras-service/internal/model"
)

// Criterio es el resultado de clasificar el texto buscado.
type Criterio int

const (
	CriterioTodas Criterio = iota
	CriterioEmail
	CriterioDni
	CriterioFecha
	CriterioNroCompra
)

func (c Criterio) String() string {
	switch c {
	case CriterioTodas:
		return "todas"
	case CriterioEmail:
		return "email"
	case CriterioDni:
		return "dni"
	case CriterioFecha:
		return "fecha"
	case CriterioNroCompra:
		return "nroCompra"
	}
	return "desconocido"
}

// Clasificar decide qué búsqueda dispara el texto ingresado. El orden de
// prioridad es fijo y debe preservarse:
//  1. vacío → listar todas
//  2. contiene "@" y "." → email
//  3. numérico de exactamente 8 caracteres → DNI
//  4. contiene "/" o "-" → fecha
//  5. cualquier otra cosa → número de compra
//
// Es una heurística, no un parseo validado: un número de 8 dígitos que no
// sea un DNI real, o un número de compra con guiones, quedan mal
// clasificados.
func Clasificar(dato string) Criterio {
	switch {
	case dato == "":
		return CriterioTodas
	case strings.Contains(dato, "@") && strings.Contains(dato, "."):
		return CriterioEmail
	case esNumerico(dato) && len(dato) == 8:
		return CriterioDni
	case strings.Contains(dato, "/") || strings.Contains(dato, "-"):
		return CriterioFecha
	default:
		return CriterioNroCompra
	}
}

func esNumerico(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CorregirFecha normaliza los separadores de fecha al formato persistido.
func CorregirFecha(fecha string) string {
	return strings.ReplaceAll(fecha, "-", "/")
}

// Filtros secundarios aplicados después de la búsqueda principal.
type Filtros struct {
	// Estado filtra por estado exacto. Vacío o "Todas" no filtra.
	Estado string
	// FechaDesde y FechaHasta definen un rango inclusivo. Solo se aplica
	// cuando ambos extremos están presentes.
	FechaDesde string
	FechaHasta string
}

// FiltrarPorEstado conserva las compras cuyo estado coincide exactamente.
func FiltrarPorEstado(compras []model.Compra, estado string) []model.Compra {
	out := make([]model.Compra, 0, len(compras))
	for _, compra := range compras {
		if string(compra.Estado) == estado {
			out = append(out, compra)
		}
	}
	return out
}

// FiltrarPorRangoFechas conserva las compras dentro del rango inclusivo.
// La comparación es lexicográfica: vale porque el formato YYYY/MM/DD con
// cero a la izquierda ordena igual que el orden cronológico.
func FiltrarPorRangoFechas(compras []model.Compra, fechaDesde, fechaHasta string) []model.Compra {
	desde := CorregirFecha(fechaDesde)
	hasta := CorregirFecha(fechaHasta)

	out := make([]model.Compra, 0, len(compras))
	for _, compra := range compras {
		fecha := CorregirFecha(compra.Fecha)
		if fecha >= desde && fecha <= hasta {
			out = append(out, compra)
		}
	}
	return out
}

// AplicarFiltros aplica estado y rango de fechas, cada uno solo si está
// configurado.
func AplicarFiltros(compras []model.Compra, filtros Filtros) []model.Compra {
	if filtros.Estado != "" && filtros.Estado != "Todas" {
		compras = FiltrarPorEstado(compras, filtros.Estado)
	}
	if filtros.FechaDesde != "" && filtros.FechaHasta != "" {
		compras = FiltrarPorRangoFechas(compras, filtros.FechaDesde, filtros.FechaHasta)
	}
	return compras
}

// ExcluirArchivadas filtra las compras en estado Archivado. Es la regla por
// defecto del listado completo, salvo que el filtro de estado pida
// explícitamente las archivadas.
func ExcluirArchivadas(compras []model.Compra) []model.Compra {
	out := make([]model.Compra, 0, len(compras))
	for _, compra := range compras {
		if compra.Estado != model.EstadoArchivado {
			out = append(out, compra)
		}
	}
	return out
}

// OrdenarPorFecha ordena descendente por fecha (más reciente primero).
// El orden es estable: empates conservan el orden de llegada.
func OrdenarPorFecha(compras []model.Compra) {
	sort.SliceStable(compras, func(i, j int) bool {
		return compras[i].Fecha > compras[j].Fecha
	})
}

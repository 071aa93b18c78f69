package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Servicio que consulta al microservicio de catálogo de productos.
type CatalogService struct {
	catalogURL string
	client     *http.Client
}

func NewCatalogService(catalogURL string) *CatalogService {
	return &CatalogService{
		catalogURL: catalogURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type producto struct {
	ID     string  `json:"id"`
	Nombre string  `json:"nombre"`
	Precio float64 `json:"precio"`
	Stock  int     `json:"stock"`
}

func (c *CatalogService) getProducto(ctx context.Context, idProducto string) (*producto, error) {
	req, err := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/productos/%s", c.catalogURL, url.PathEscape(idProducto)), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catálogo respondió %d para producto %s", resp.StatusCode, idProducto)
	}

	var p producto
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// HayStock verifica que el producto tenga al menos la cantidad pedida.
func (c *CatalogService) HayStock(ctx context.Context, idProducto string, cantidad int) (bool, error) {
	p, err := c.getProducto(ctx, idProducto)
	if err != nil {
		return false, err
	}
	return p.Stock >= cantidad, nil
}

// DescontarStock descuenta la cantidad comprada del stock del producto.
// Es una llamada separada de la verificación: entre ambas existe una ventana
// de carrera conocida, tolerada por los llamadores.
func (c *CatalogService) DescontarStock(ctx context.Context, idProducto string, cantidad int) error {
	body, err := json.Marshal(map[string]int{"cantidad": cantidad})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/productos/%s/stock/descontar", c.catalogURL, url.PathEscape(idProducto)),
		bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("catálogo respondió %d al descontar stock de %s", resp.StatusCode, idProducto)
	}
	return nil
}

func (c *CatalogService) PrecioProducto(ctx context.Context, idProducto string) (float64, error) {
	p, err := c.getProducto(ctx, idProducto)
	if err != nil {
		return 0, err
	}
	return p.Precio, nil
}

func (c *CatalogService) NombreProducto(ctx context.Context, idProducto string) (string, error) {
	p, err := c.getProducto(ctx, idProducto)
	if err != nil {
		return "", err
	}
	return p.Nombre, nil
}

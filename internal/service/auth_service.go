package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Servicio que consulta al microservicio externo de autenticación.
type AuthService struct {
	authURL string
	client  *http.Client
}

type AuthUser struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Rol     string `json:"rol"`
	Email   string `json:"email"`
	Enabled bool   `json:"enabled"`
}

// Crea el servicio de autenticación apuntando a la URL del microservicio.
func NewAuthService(authURL string) *AuthService {
	return &AuthService{
		authURL: authURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Verifica si el usuario tiene rol de administrador.
func (a *AuthService) IsAdmin(user *AuthUser) bool {
	return user.Rol == "admin"
}

// Valida el token consultando a /users/current del microservicio de auth.
func (a *AuthService) ValidateToken(token string) (*AuthUser, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/users/current", a.authURL), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	if !user.Enabled {
		return nil, errors.New("user disabled")
	}

	return &user, nil
}

// GetUserIdByEmail resuelve el id de usuario a partir del email.
// Devuelve "" (sin error) cuando el email no corresponde a ningún usuario.
func (a *AuthService) GetUserIdByEmail(ctx context.Context, email string) (string, error) {
	return a.lookupID(ctx, fmt.Sprintf("%s/users/by-email?email=%s", a.authURL, url.QueryEscape(email)))
}

// GetUserIdByDni resuelve el id de usuario a partir del DNI.
// Devuelve "" (sin error) cuando el DNI no corresponde a ningún usuario.
func (a *AuthService) GetUserIdByDni(ctx context.Context, dni string) (string, error) {
	return a.lookupID(ctx, fmt.Sprintf("%s/users/by-dni?dni=%s", a.authURL, url.QueryEscape(dni)))
}

func (a *AuthService) lookupID(ctx context.Context, lookupURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", lookupURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth respondió %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.ID, nil
}

// GetUserNameById devuelve el nombre para mostrar del usuario.
// Un id desconocido devuelve "" sin error.
func (a *AuthService) GetUserNameById(ctx context.Context, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/users/%s", a.authURL, url.PathEscape(id)), nil)
	if err != nil {
		return "", err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth respondió %d", resp.StatusCode)
	}

	var body struct {
		Nombre   string `json:"nombre"`
		Apellido string `json:"apellido"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Apellido == "" {
		return body.Nombre, nil
	}
	return body.Nombre + " " + body.Apellido, nil
}

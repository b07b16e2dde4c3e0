package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos. El refresh token solo sirve para renovar el par;
// el middleware de auth rechaza refresh tokens como credencial de acceso.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añaden Kind y CompanyID para que el middleware de autorización pueda tomar
// decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Kind      string `json:"kind"`       // "administrator" | "external"
	TokenType string `json:"token_type"` // "access" | "refresh"
}

// Pair par de tokens devuelto en login, registro y refresh.
type Pair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // segundos de vida del access token
}

// Config parámetros de emisión.
type Config struct {
	Secret            string
	Issuer            string
	AccessExpMinutes  int
	RefreshExpMinutes int
}

// GeneratePair emite un access token de vida corta y un refresh token de vida larga.
func GeneratePair(cfg Config, userID, companyID, kind string) (*Pair, error) {
	access, err := generate(cfg, userID, companyID, kind, TokenTypeAccess, cfg.AccessExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := generate(cfg, userID, companyID, kind, TokenTypeRefresh, cfg.RefreshExpMinutes)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    cfg.AccessExpMinutes * 60,
	}, nil
}

func generate(cfg Config, userID, companyID, kind, tokenType string, expMinutes int) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Kind:      kind,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// Parse valida el token y devuelve los claims de la aplicación.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// ParseAccess valida el token y exige que sea de tipo access.
func ParseAccess(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, fmt.Errorf("se requiere un access token")
	}
	return claims, nil
}

// ParseRefresh valida el token y exige que sea de tipo refresh.
func ParseRefresh(secret, tokenString string) (*Claims, error) {
	claims, err := Parse(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, fmt.Errorf("se requiere un refresh token")
	}
	return claims, nil
}

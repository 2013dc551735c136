// Package geo cliente best-effort de geolocalización por IP. Enriquecimiento
// no autoritativo: cualquier fallo devuelve "" y la operación que lo pidió
// sigue adelante sin país.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/chatokay/chatokay-api/internal/application/usecase"
	"github.com/chatokay/chatokay-api/pkg/config"
	"github.com/chatokay/chatokay-api/pkg/logger"
)

var _ usecase.CountryResolver = (*Client)(nil)

// Client resuelve país por IP contra un servicio HTTP externo, detrás de un
// circuit breaker: si el servicio degrada, se deja de llamar en vez de sumar
// su latencia a cada onboarding.
type Client struct {
	endpoint string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	log      *logger.Logger
}

// New construye el cliente. Endpoint vacío devuelve nil: el caso de uso trata
// el resolver nil como deshabilitado.
func New(cfg config.GeoConfig, log *logger.Logger) *Client {
	if cfg.Endpoint == "" {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "geo",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker cambió de estado")
		},
	})
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
		breaker:  breaker,
		log:      log,
	}
}

// Country devuelve el código de país de la IP o "" en cualquier fallo.
func (c *Client) Country(ctx context.Context, ip string) string {
	if ip == "" {
		return ""
	}
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.lookup(ctx, ip)
	})
	if err != nil {
		c.log.Debug().Err(err).Str("ip", ip).Msg("geolocalización falló, se ignora")
		return ""
	}
	country, _ := out.(string)
	return country
}

func (c *Client) lookup(ctx context.Context, ip string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/"+ip, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo: status %d", resp.StatusCode)
	}
	var body struct {
		CountryCode string `json:"countryCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return strings.ToUpper(body.CountryCode), nil
}

package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bom-inventario-api/internal/domain"
	"github.com/jhoicas/bom-inventario-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app.
// Con DB_FORCE_IPV4 el host se resuelve a IPv4 y el dial usa tcp4 (Docker suele no tener IPv6).
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	var v4 *ipv4Resolver
	if cfg.ForceIPv4 {
		v4 = newIPv4Resolver(cfg.FallbackDNS)
		dsn = v4.dsn(ctx, cfg)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	if v4 != nil {
		poolConfig.ConnConfig.DialFunc = v4.dial
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = 25
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: crear pool: %w", domain.ErrConnection, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping DB: %w", domain.ErrConnection, err)
	}
	return pool, nil
}

// ipv4Resolver resuelve hosts a IPv4 con el resolver del sistema y, si se configuró,
// con un DNS alternativo (DB_FALLBACK_DNS) cuando el primero solo devuelve AAAA.
type ipv4Resolver struct {
	resolvers []*net.Resolver
}

func newIPv4Resolver(fallbackDNS string) *ipv4Resolver {
	r := &ipv4Resolver{resolvers: []*net.Resolver{net.DefaultResolver}}
	if addr := fallbackAddr(fallbackDNS); addr != "" {
		r.resolvers = append(r.resolvers, &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", addr)
			},
		})
	}
	return r
}

// fallbackAddr normaliza "host" o "host:puerto"; sin puerto se asume 53.
func fallbackAddr(dns string) string {
	dns = strings.TrimSpace(dns)
	if dns == "" {
		return ""
	}
	if _, _, err := net.SplitHostPort(dns); err == nil {
		return dns
	}
	return net.JoinHostPort(dns, "53")
}

func (r *ipv4Resolver) resolve(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	err := fmt.Errorf("%s sin registros A", host)
	for _, res := range r.resolvers {
		ips, lookupErr := res.LookupIP(ctx, "ip4", host)
		if lookupErr != nil {
			err = lookupErr
			continue
		}
		if len(ips) > 0 {
			return ips[0].String(), nil
		}
	}
	return "", err
}

// dsn devuelve el connection string con el host ya resuelto; si no hay IPv4 queda como estaba.
func (r *ipv4Resolver) dsn(ctx context.Context, cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return r.rewriteURL(ctx, cfg.DatabaseURL)
	}
	if ip, err := r.resolve(ctx, cfg.Host); err == nil {
		cfg.Host = ip
	}
	return cfg.DSN()
}

func (r *ipv4Resolver) rewriteURL(ctx context.Context, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	ip, err := r.resolve(ctx, u.Hostname())
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

// dial conecta por tcp4; sin IPv4 para el host cae al dial normal.
func (r *ipv4Resolver) dial(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	var d net.Dialer
	ip, err := r.resolve(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

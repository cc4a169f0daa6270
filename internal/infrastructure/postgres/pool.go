package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sistema-facturador/pkg/config"
)

// El store serializa lecturas y escrituras del documento con un mutex, así que
// nunca hay más de una consulta en vuelo por proceso. Una conexión extra cubre
// el health check del pool.
const (
	blobMaxConns    = 2
	blobIdleTimeout = 5 * time.Minute
	pingTimeout     = 5 * time.Second
	applicationName = "sistema-facturador"
)

// NewPool abre el pool que usa DocumentRepo y verifica la conexión.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := blobPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// blobPoolConfig arma la configuración desde DATABASE_URL o desde DB_HOST, DB_PORT, etc.
func blobPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	pc.MaxConns = blobMaxConns
	pc.MinConns = 0
	pc.MaxConnIdleTime = blobIdleTimeout
	pc.MaxConnLifetime = time.Hour
	pc.HealthCheckPeriod = time.Minute
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName
	pc.ConnConfig.DialFunc = dialPreferIPv4
	return pc, nil
}

// dialPreferIPv4 conecta por IPv4 si el host tiene registro A. En contenedores
// sin IPv6 un proveedor que publica AAAA primero deja el dial colgado.
func dialPreferIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	if ip := net.ParseIP(host); ip != nil {
		return d.DialContext(ctx, network, addr)
	}
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip4", host)
	if err != nil || len(ips) == 0 {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ips[0].String(), port))
}

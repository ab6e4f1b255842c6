package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Migrations struct {
	pool *pgxpool.Pool
}

func NewMigrations(pool *pgxpool.Pool) *Migrations {
	return &Migrations{pool: pool}
}

func (m *Migrations) Setup(ctx context.Context) error {
	steps := []struct {
		name string
		ddl  string
	}{
		{"rate_snapshot", rateSnapshotDDL},
		{"request_log", requestLogDDL},
		{"api_keys", apiKeysDDL},
	}
	for _, s := range steps {
		if _, err := m.pool.Exec(ctx, s.ddl); err != nil {
			return fmt.Errorf("ensure table %s: %w", s.name, err)
		}
	}
	return nil
}

const rateSnapshotDDL = `
create table if not exists rate_snapshot (
  base_ccy   varchar(8) not null,
  quote_ccy  varchar(8) not null,
  rate       numeric(24, 10) not null,
  fetched_at timestamptz not null,
  primary key (base_ccy, quote_ccy, fetched_at)
);

create index if not exists idx_rate_snapshot_base_fetched_at
  on rate_snapshot (base_ccy, fetched_at desc);
`

const requestLogDDL = `
create table if not exists request_log (
  id          bigserial primary key,
  path        text not null,
  status      integer,
  date_as_of  date,
  created_at  timestamptz not null default now()
);

alter table request_log add column if not exists request_id text;
alter table request_log add column if not exists route text not null default 'unmatched';

create index if not exists idx_request_log_route_created_at
  on request_log (route, created_at desc);
`

const apiKeysDDL = `
create table if not exists api_keys (
  key_hash   char(64) primary key,
  is_active  boolean not null default true,
  created_at timestamptz not null default now()
);

alter table api_keys add column if not exists revoked_at timestamptz;
`

package postgres

// Schema returns the DDL statements applied on startup, in order.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            name TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS organizations (
            id BIGSERIAL PRIMARY KEY,
            owner_id BIGINT NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS memberships (
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            role TEXT NOT NULL,
            permissions TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (organization_id, user_id)
        )`,
		`CREATE TABLE IF NOT EXISTS clients (
            id BIGSERIAL PRIMARY KEY,
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            user_id BIGINT UNIQUE REFERENCES users(id),
            name TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            email TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS measurements (
            id BIGSERIAL PRIMARY KEY,
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            client_id BIGINT NOT NULL REFERENCES clients(id),
            label TEXT NOT NULL,
            entries JSONB NOT NULL DEFAULT '{}',
            taken_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            client_id BIGINT NOT NULL REFERENCES clients(id),
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            total_amount NUMERIC(12,2) NOT NULL,
            paid_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            due_date TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payments (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            amount NUMERIC(12,2) NOT NULL,
            method TEXT NOT NULL,
            reference TEXT UNIQUE NOT NULL,
            paid_at TIMESTAMPTZ NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payment_intents (
            id BIGSERIAL PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            amount NUMERIC(12,2) NOT NULL,
            email TEXT NOT NULL,
            status TEXT NOT NULL,
            authorization_url TEXT NOT NULL DEFAULT '',
            attempts INTEGER NOT NULL DEFAULT 0,
            last_checked_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tracking_tokens (
            id BIGSERIAL PRIMARY KEY,
            token TEXT UNIQUE NOT NULL,
            client_id BIGINT NOT NULL REFERENCES clients(id),
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            active BOOLEAN NOT NULL DEFAULT TRUE,
            last_used_at TIMESTAMPTZ,
            expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS invoice_sequences (
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            year INTEGER NOT NULL,
            last INTEGER NOT NULL,
            PRIMARY KEY (organization_id, year)
        )`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id BIGSERIAL PRIMARY KEY,
            organization_id BIGINT NOT NULL REFERENCES organizations(id),
            order_id BIGINT NOT NULL REFERENCES orders(id),
            number TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            issued_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            due_at TIMESTAMPTZ,
            UNIQUE (organization_id, number)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_clients_org ON clients(organization_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_org ON orders(organization_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_order ON payments(order_id, paid_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_intents_pending ON payment_intents(status, last_checked_at)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_client ON tracking_tokens(client_id)`,
	}
}

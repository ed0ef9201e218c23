package database

import "github.com/jmoiron/sqlx"

// SchemaSQL is the full DDL for the storefront database. Statements are
// idempotent so Migrate can run on every startup.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    phone         TEXT NOT NULL DEFAULT '',
    address       TEXT NOT NULL DEFAULT '',
    city          TEXT NOT NULL DEFAULT '',
    state         TEXT NOT NULL DEFAULT '',
    pincode       TEXT NOT NULL DEFAULT '',
    country       TEXT NOT NULL DEFAULT 'India',
    profile_image TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    parent_id   UUID NULL REFERENCES categories(id),
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    is_featured BOOLEAN NOT NULL DEFAULT FALSE,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id);

CREATE TABLE IF NOT EXISTS products (
    id          UUID PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL,
    price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
    category_id UUID NOT NULL REFERENCES categories(id),
    description TEXT NOT NULL DEFAULT '',
    image       JSONB NOT NULL DEFAULT '[]',
    is_featured BOOLEAN NOT NULL DEFAULT FALSE,
    is_active   BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

CREATE TABLE IF NOT EXISTS product_sizes (
    product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    size       TEXT NOT NULL,
    quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    PRIMARY KEY (product_id, size)
);

CREATE TABLE IF NOT EXISTS orders (
    id             UUID PRIMARY KEY,
    user_id        UUID NOT NULL REFERENCES users(id),
    user_name      TEXT NOT NULL,
    user_email     TEXT NOT NULL,
    subtotal       NUMERIC(12,2) NOT NULL,
    gst            NUMERIC(12,2) NOT NULL,
    total          NUMERIC(12,2) NOT NULL,
    status         TEXT NOT NULL DEFAULT 'Pending',
    payment_method TEXT NOT NULL DEFAULT 'COD / Stripe',
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

-- Line items are value snapshots of the product at order time. product_id
-- carries no foreign key so catalog deletions never touch order history.
CREATE TABLE IF NOT EXISTS order_items (
    order_id      UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    line_no       INTEGER NOT NULL,
    product_id    UUID NOT NULL,
    name          TEXT NOT NULL,
    price         NUMERIC(12,2) NOT NULL,
    quantity      INTEGER NOT NULL,
    selected_size TEXT NOT NULL DEFAULT '',
    image         TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (order_id, line_no)
);

CREATE TABLE IF NOT EXISTS notifications (
    id           UUID PRIMARY KEY,
    type         TEXT NOT NULL,
    message      TEXT NOT NULL,
    reference_id TEXT NOT NULL DEFAULT '',
    is_read      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(is_read) WHERE NOT is_read;

-- Audit trail for every ledger mutation. No foreign key to products: the
-- trail outlives catalog deletions.
CREATE TABLE IF NOT EXISTS stock_movements (
    id              UUID PRIMARY KEY,
    product_id      UUID NOT NULL,
    size            TEXT NOT NULL,
    movement_type   TEXT NOT NULL,
    quantity_change INTEGER NOT NULL,
    quantity_before INTEGER NOT NULL,
    quantity_after  INTEGER NOT NULL,
    reference_type  TEXT NOT NULL DEFAULT '',
    reference_id    TEXT NOT NULL DEFAULT '',
    notes           TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements(product_id, size);
`

func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(SchemaSQL)
	return err
}

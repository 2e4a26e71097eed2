package store

// schemaSQL creates the price table when it is missing
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS daily_prices (
		symbol      TEXT             NOT NULL,
		trade_date  DATE             NOT NULL,
		open_price  DOUBLE PRECISION NOT NULL,
		high_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
		low_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
		close_price DOUBLE PRECISION NOT NULL,
		volume      BIGINT           NOT NULL DEFAULT 0,
		updated_at  TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
		PRIMARY KEY (symbol, trade_date)
	)
`
